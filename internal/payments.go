package internal

import (
	"context"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentProvider is the opaque create-intent capability. The returned
// client secret lets the client complete the payment out of band.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// POST /create-payment-intent — validates the price, converts to minor
// units and asks the provider for an intent. Nothing is persisted here.
func CreatePaymentIntent(p PaymentProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Price *float64 `json:"price"`
		}
		if err := c.BindJSON(&req); err != nil || req.Price == nil || *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid price"})
			return
		}

		amount := int64(math.Round(*req.Price * 100))
		secret, err := p.CreateIntent(c.Request.Context(), amount, "usd")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "payment provider error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
	}
}

// POST /payments — persists the client-reported record as-is. There is
// no server-side check against the provider's transaction, so the data
// is only as trustworthy as the client; see DESIGN.md.
func RecordPayment(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p Payment
		if err := c.BindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "bad json"})
			return
		}
		id, err := s.Payments.Insert(c.Request.Context(), p)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		zlog.Info("payment recorded",
			zap.String("email", p.Email),
			zap.String("contest_id", p.ContestID),
			zap.Float64("amount", p.Amount))
		c.JSON(http.StatusOK, gin.H{"paymentResult": gin.H{"insertedId": id}})
	}
}

// GET /payments/:email — authenticated + self.
func ListPayments(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		payments, err := s.Payments.ListByEmail(c.Request.Context(), c.Param("email"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}
