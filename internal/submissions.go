package internal

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func ListSubmissions(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		subs, err := s.Submissions.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, subs)
	}
}

// POST /submission — entries always start in the submitted state.
func CreateSubmission(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub Submission
		if err := c.BindJSON(&sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "bad json"})
			return
		}
		sub.Status = SubmissionSubmitted

		id, err := s.Submissions.Insert(c.Request.Context(), sub)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"insertedId": id})
	}
}

func GetSubmission(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := s.Submissions.Find(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, sub)
	}
}

// PATCH /submission/:id — the path parameter is a contest id, not a
// submission id, and the promotion hits every matching submission. See
// MarkWinner for the companion winner record.
func MarkSubmissionWinner(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		contestID := c.Param("id")
		n, err := MarkWinner(ctx, s, contestID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		s.Audit.Record(ctx, auditActor(c), "mark_winner", "contest_id="+contestID)
		c.JSON(http.StatusOK, gin.H{"modifiedCount": n})
	}
}
