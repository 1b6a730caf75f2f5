package handler

import (
	"github.com/gin-gonic/gin"

	"accumulator/internal/auth"
)

// Register mounts all gateway routes on r. limit, when not nil, runs on every
// route except health checks; on protected routes it runs after the session
// is known so limits apply per user.
func (h *Handler) Register(r gin.IRouter, limit gin.HandlerFunc) {
	r.GET("/healthz", h.Healthz)

	public := r.Group("/")
	if limit != nil {
		public.Use(limit)
	}
	public.GET("/signin", h.SignInPage)
	public.POST("/signin", h.SignIn)
	public.GET("/signup", h.SignUpPage)
	public.POST("/signup", h.SignUp)
	public.POST("/signout", h.SignOut)

	private := r.Group("/", auth.RequireSession(h.sessions))
	if limit != nil {
		private.Use(limit)
	}
	private.GET("/", h.ListIntegrations)

	integrations := private.Group("/integrations")
	integrations.POST("", h.AddIntegration)
	integrations.POST("/:integration_id/update_friends", h.UpdateFriends)
	integrations.POST("/:integration_id/delete", h.DeleteIntegration)
	integrations.GET("/:integration_id/friends", h.ListFriends)
	integrations.POST("/:integration_id/friends/refresh", h.RefreshFriends)
	integrations.POST("/:integration_id/friends/:friend_id/promote", h.PromoteFriend)
	integrations.POST("/:integration_id/friends/:friend_id/demote", h.DemoteFriend)
	integrations.GET("/:integration_id/teachers", h.ListTeachers)
	integrations.GET("/:integration_id/attendance/:teacher_id", h.ShowAttendance)
	integrations.GET("/:integration_id/attendance/:teacher_id/export", h.ExportAttendance)

	users := private.Group("/users", auth.RequireAdmin())
	users.GET("", h.ListUsers)
	users.POST("/:user_id/impersonate", h.Impersonate)
}
