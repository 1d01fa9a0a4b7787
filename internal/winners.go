package internal

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /winner/:email — self-gated in the router.
func ListWinnings(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		winners, err := s.Winners.ListByEmail(c.Request.Context(), c.Param("email"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, winners)
	}
}

// POST /winner — direct insert kept alongside the companion record the
// lifecycle engine writes, for winners decided outside a bulk promotion.
func CreateWinner(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var w Winner
		if err := c.BindJSON(&w); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "bad json"})
			return
		}
		id, err := s.Winners.Insert(c.Request.Context(), w)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"insertedId": id})
	}
}
