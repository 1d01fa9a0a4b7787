package internal

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ------------------- Tokens -------------------

// POST /jwt — signs the supplied identity claims. Issuance is open; the
// role checks always consult the identity store, so a token alone grants
// nothing beyond the email it names.
func IssueJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.BindJSON(&req); err != nil || req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "email is required"})
			return
		}
		token, err := IssueToken(secret, req.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not sign token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// ------------------- Users -------------------

// POST /users — idempotent registration: a repeat call for a known email
// is a no-op answered with a null insertedId.
func Register(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var u User
		if err := c.BindJSON(&u); err != nil || u.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "email is required"})
			return
		}
		if !u.Role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "unrecognized role"})
			return
		}

		ctx := c.Request.Context()
		existing, err := s.Users.FindByEmail(ctx, u.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		if existing != nil {
			c.JSON(http.StatusOK, gin.H{"message": "user already exists", "insertedId": nil})
			return
		}

		id, err := s.Users.Insert(ctx, u)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"insertedId": id})
	}
}

func ListUsers(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.Users.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// GET /users/admin/:email — self-gated role probe.
func CheckAdmin(s *Stores) gin.HandlerFunc {
	return checkRole(s, RoleAdmin, "admin")
}

// GET /users/creator/:email
func CheckCreator(s *Stores) gin.HandlerFunc {
	return checkRole(s, RoleCreator, "creator")
}

func checkRole(s *Stores, role Role, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := s.Users.FindByEmail(c.Request.Context(), c.Param("email"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{key: u != nil && u.Role == role})
	}
}

// PATCH /users/admin/:id — any authenticated caller may promote to admin,
// matching the source system's behavior.
func MakeAdmin(s *Stores) gin.HandlerFunc {
	return promote(s, RoleAdmin, "make_admin")
}

// PATCH /users/creator/:id — admin-gated in the router.
func MakeCreator(s *Stores) gin.HandlerFunc {
	return promote(s, RoleCreator, "make_creator")
}

func promote(s *Stores, role Role, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")
		n, err := PromoteRole(ctx, s, id, role)
		if errors.Is(err, ErrInvalidRole) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "unrecognized role"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		s.Audit.Record(ctx, auditActor(c), action, "user_id="+id)
		c.JSON(http.StatusOK, gin.H{"modifiedCount": n})
	}
}

// DELETE /users/:id
func DeleteUser(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")
		n, err := s.Users.Delete(ctx, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		s.Audit.Record(ctx, auditActor(c), "delete_user", "user_id="+id)
		c.JSON(http.StatusOK, gin.H{"deletedCount": n})
	}
}
