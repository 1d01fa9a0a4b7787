package internal

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the full route table. Guards compose left to right;
// routes without guards are open by design of the source system.
func NewRouter(s *Stores, secret string, pay PaymentProvider) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// liveness
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "contestHub is running") })

	r.POST("/jwt", IssueJWT(secret))

	// draft contests (review queue)
	r.GET("/newContest", ListDrafts(s))
	r.POST("/newContest", CreateDraft(s))
	r.GET("/newContest/:id", GetDraft(s))
	r.PUT("/newContest/:id", UpdateDraft(s))
	r.PATCH("/newContest/:id", ApproveDraftContest(s))
	r.DELETE("/newContest/:id", DeleteDraft(s))

	// published contests
	r.GET("/contests", ListContests(s))
	r.POST("/contests", CreateContest(s))
	r.GET("/contests/:id", GetContest(s))

	// users
	r.GET("/users", Auth(secret), RequireRole(s.Users, RoleAdmin), ListUsers(s))
	r.POST("/users", Register(s))
	r.GET("/users/admin/:email", Auth(secret), RequireSelf("email"), CheckAdmin(s))
	r.GET("/users/creator/:email", Auth(secret), RequireSelf("email"), CheckCreator(s))
	r.PATCH("/users/admin/:id", Auth(secret), MakeAdmin(s))
	r.PATCH("/users/creator/:id", Auth(secret), RequireRole(s.Users, RoleAdmin), MakeCreator(s))
	r.DELETE("/users/:id", DeleteUser(s))

	// payments
	r.POST("/create-payment-intent", CreatePaymentIntent(pay))
	r.POST("/payments", RecordPayment(s))
	r.GET("/payments/:email", Auth(secret), RequireSelf("email"), ListPayments(s))

	// submissions
	r.GET("/submission", ListSubmissions(s))
	r.POST("/submission", CreateSubmission(s))
	r.GET("/submission/:id", GetSubmission(s))
	r.PATCH("/submission/:id", MarkSubmissionWinner(s))

	// winners
	r.GET("/winner/:email", Auth(secret), RequireSelf("email"), ListWinnings(s))
	r.POST("/winner", CreateWinner(s))

	// audit
	r.GET("/logs", Auth(secret), RequireRole(s.Users, RoleAdmin), RecentLogs(s))

	return r
}
