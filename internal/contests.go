package internal

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ------------------- Draft contests (review queue) -------------------

func ListDrafts(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		drafts, err := s.Drafts.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, drafts)
	}
}

// POST /newContest — every draft enters the queue as Pending regardless
// of what the client sent.
func CreateDraft(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var d DraftContest
		if err := c.BindJSON(&d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "bad json"})
			return
		}
		d.Status = DraftPending

		id, err := s.Drafts.Insert(c.Request.Context(), d)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"insertedId": id})
	}
}

func GetDraft(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := s.Drafts.Find(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// PUT /newContest/:id — full field rewrite by the owning creator. No
// guard restricts edits after approval; that matches the source system.
func UpdateDraft(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f ContestFields
		if err := c.BindJSON(&f); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "bad json"})
			return
		}
		n, err := s.Drafts.UpdateFields(c.Request.Context(), c.Param("id"), f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"modifiedCount": n})
	}
}

// PATCH /newContest/:id — Pending -> Approved.
func ApproveDraftContest(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")
		n, err := ApproveDraft(ctx, s, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		s.Audit.Record(ctx, auditActor(c), "approve_draft", "draft_id="+id)
		c.JSON(http.StatusOK, gin.H{"modifiedCount": n})
	}
}

func DeleteDraft(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")
		n, err := s.Drafts.Delete(ctx, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		s.Audit.Record(ctx, auditActor(c), "delete_draft", "draft_id="+id)
		c.JSON(http.StatusOK, gin.H{"deletedCount": n})
	}
}

// ------------------- Published contests -------------------

func ListContests(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		contests, err := s.Contests.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, contests)
	}
}

// POST /contests — used by the client to copy an approved draft into the
// published collection. Publication is create-only; there is no update or
// delete for a published contest.
func CreateContest(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item Contest
		if err := c.BindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "bad json"})
			return
		}
		id, err := s.Contests.Insert(c.Request.Context(), item)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"insertedId": id})
	}
}

// GET /contests/:id — lookup by the path id value. A key that matches
// nothing answers null, same as the other single-record reads.
func GetContest(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		contest, err := s.Contests.Find(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, contest)
	}
}
