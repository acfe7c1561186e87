package routes

import (
	"net/http"

	"workline/admin"
	"workline/analytics"
	"workline/applications"
	"workline/auth"
	"workline/bikes"
	"workline/candidates"
	"workline/chat"
	"workline/documents"
	"workline/jobs"
	"workline/middleware"
	"workline/models"
	"workline/profile"
	"workline/ratelim"
	"workline/wishlist"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile", middleware.Authenticate(profile.UpdateProfile))
	router.GET("/api/profile/saved-jobs", middleware.Authenticate(profile.GetSavedJobs))
}

func AddJobRoutes(router *httprouter.Router) {
	router.GET("/api/jobs", jobs.GetJobs)
	router.GET("/api/jobs/latest", jobs.GetLatestJobs)
	router.GET("/api/jobs/job/:id", jobs.GetJobByID)
	router.POST("/api/jobs", middleware.RequireAdmin(jobs.CreateJob, models.RoleSalesAdmin))
	router.PUT("/api/jobs/job/:id", middleware.RequireAdmin(jobs.UpdateJob, models.RoleSalesAdmin))
	router.DELETE("/api/jobs/job/:id", middleware.RequireAdmin(jobs.DeleteJob, models.RoleSalesAdmin))

	router.POST("/api/jobs/job/:id/apply", ratelim.RateLimit(middleware.Authenticate(jobs.ApplyToJob)))
	router.POST("/api/jobs/job/:id/inquiries", ratelim.RateLimit(middleware.OptionalAuth(jobs.CreateInquiry)))
	router.GET("/api/jobs/job/:id/inquiries", middleware.RequireAdmin(jobs.GetJobInquiries, models.RoleSalesAdmin))
	router.PUT("/api/inquiries/:id/answer", middleware.RequireAdmin(jobs.AnswerInquiry, models.RoleSalesAdmin))
}

func AddApplicationRoutes(router *httprouter.Router) {
	router.GET("/api/applications", middleware.RequireAdmin(applications.GetAllApplications, models.RoleSalesAdmin))
	router.GET("/api/applications/mine", middleware.Authenticate(applications.GetMyApplications))
	router.GET("/api/jobs/job/:id/applications", middleware.RequireAdmin(applications.GetJobApplications, models.RoleSalesAdmin))
	router.PUT("/api/applications/:id/status", middleware.RequireAdmin(applications.UpdateStatus, models.RoleSalesAdmin))
}

func AddCandidateRoutes(router *httprouter.Router) {
	router.GET("/api/candidates", middleware.Authenticate(middleware.RequireRole(models.RoleAgent, candidates.GetCandidates)))
	router.GET("/api/candidates/:id", middleware.Authenticate(middleware.RequireRole(models.RoleAgent, candidates.GetCandidate)))
	router.POST("/api/candidates", middleware.Authenticate(middleware.RequireRole(models.RoleAgent, candidates.CreateCandidate)))
	router.PUT("/api/candidates/:id", middleware.Authenticate(middleware.RequireRole(models.RoleAgent, candidates.UpdateCandidate)))
	router.DELETE("/api/candidates/:id", middleware.Authenticate(middleware.RequireRole(models.RoleAgent, candidates.DeleteCandidate)))

	router.POST("/api/candidates/:id/inquiries", middleware.Authenticate(middleware.RequireRole(models.RoleAgent, candidates.CreateCandidateInquiry)))
	router.GET("/api/candidates/:id/inquiries", middleware.Authenticate(middleware.RequireRole(models.RoleAgent, candidates.GetCandidateInquiries)))
	router.POST("/api/candidates/:id/documents/:type", middleware.Authenticate(middleware.RequireRole(models.RoleAgent, documents.UploadCandidateDocument)))
}

func AddDocumentRoutes(router *httprouter.Router) {
	router.POST("/api/documents/:type", middleware.Authenticate(documents.UploadDocument))
	router.GET("/api/documents", middleware.Authenticate(documents.GetDocuments))
	router.GET("/api/documents/type/:type", middleware.Authenticate(documents.GetDocuments))
	router.DELETE("/api/documents/:id", middleware.Authenticate(documents.DeleteDocument))
}

func AddWishlistRoutes(router *httprouter.Router) {
	router.POST("/api/wishlist", middleware.Authenticate(wishlist.Save))
	router.DELETE("/api/wishlist/:itemtype/:itemid", middleware.Authenticate(wishlist.Unsave))
	router.GET("/api/wishlist", middleware.Authenticate(wishlist.List))
	router.GET("/api/wishlist/:itemtype", middleware.Authenticate(wishlist.List))
}

func AddBikeRoutes(router *httprouter.Router) {
	router.GET("/api/bikes", bikes.GetBikes)
	router.GET("/api/bikes/:id", bikes.GetBikeByID)
	router.POST("/api/bikes", middleware.RequireAdmin(bikes.CreateBike, models.RoleSalesAdmin))
	router.PUT("/api/bikes/:id", middleware.RequireAdmin(bikes.UpdateBike, models.RoleSalesAdmin))
	router.DELETE("/api/bikes/:id", middleware.RequireAdmin(bikes.DeleteBike, models.RoleSalesAdmin))

	router.POST("/api/bike-submissions", ratelim.RateLimit(middleware.Authenticate(bikes.CreateSubmission)))
	router.GET("/api/bike-submissions/mine", middleware.Authenticate(bikes.GetMySubmissions))
	router.GET("/api/bike-submissions", middleware.RequireAdmin(bikes.GetSubmissions, models.RoleSalesAdmin))
	router.PUT("/api/bike-submissions/:id/status", middleware.RequireAdmin(bikes.UpdateSubmissionStatus, models.RoleSalesAdmin))
}

func AddAnalyticsRoutes(router *httprouter.Router) {
	router.GET("/api/analytics/dashboard", middleware.Authenticate(middleware.RequireRole(models.RoleAgent, analytics.GetDashboard)))
	router.GET("/api/analytics/detailed", middleware.Authenticate(middleware.RequireRole(models.RoleAgent, analytics.GetDetailed)))
	router.POST("/api/analytics/update", middleware.Authenticate(middleware.RequireRole(models.RoleAgent, analytics.ForceSnapshot)))
	router.GET("/api/analytics/export", middleware.Authenticate(middleware.RequireRole(models.RoleAgent, analytics.ExportPDF)))
}

func AddChatRoutes(router *httprouter.Router, hub *chat.Hub) {
	router.GET("/ws/chat", chat.WebSocketHandler(hub))
	router.GET("/api/chat/messages", middleware.Authenticate(chat.GetMessages))
	router.POST("/api/chat/assignments", middleware.RequireAdmin(chat.CreateAssignment, models.RoleMainAdmin))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.POST("/api/admin/login", ratelim.RateLimit(admin.Login))
	router.GET("/api/admin/users", middleware.RequireAdmin(admin.GetUsers))
	router.DELETE("/api/admin/users/:id", middleware.RequireAdmin(admin.DeleteUser))
	router.PUT("/api/admin/agents/:id/verify", middleware.RequireAdmin(admin.VerifyAgent, models.RoleAgentAdmin))
}
