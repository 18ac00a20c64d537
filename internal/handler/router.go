package handler

import "github.com/gin-gonic/gin"

// Handlers bundles the REST handlers for route registration.
type Handlers struct {
	Requests      *RequestHandler
	Approvals     *ApprovalHandler
	Events        *EventHandler
	Reports       *ReportHandler
	Evaluations   *EvaluationHandler
	Reference     *ReferenceHandler
	Notifications *NotificationHandler
	Schema        *SchemaHandler
	Exports       *ExportHandler
}

// RegisterRoutes mounts the API surface under the given prefix.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	api := r.Group(prefix)

	api.POST("/requests", h.Requests.Submit)
	api.GET("/requests", h.Requests.List)
	api.GET("/requests/:id", h.Requests.Get)

	api.POST("/approvals", h.Approvals.Record)
	api.GET("/approvals", h.Approvals.List)

	api.POST("/events", h.Events.Schedule)
	api.GET("/events", h.Events.List)
	api.GET("/events/:id", h.Events.Get)
	api.PATCH("/events/:id/status", h.Events.UpdateStatus)

	api.POST("/reports", h.Reports.Submit)
	api.GET("/reports", h.Reports.List)
	api.POST("/evaluations", h.Evaluations.Submit)
	api.GET("/evaluations", h.Evaluations.List)

	api.POST("/branches", h.Reference.CreateBranch)
	api.GET("/branches", h.Reference.ListBranches)
	api.POST("/roles", h.Reference.CreateRole)
	api.GET("/roles", h.Reference.ListRoles)
	api.POST("/users", h.Reference.CreateUser)
	api.GET("/users", h.Reference.ListUsers)
	api.POST("/resources", h.Reference.CreateResource)
	api.GET("/resources", h.Reference.ListResources)

	api.POST("/notifications", h.Notifications.Create)
	api.GET("/notifications", h.Notifications.List)
	api.PATCH("/notifications/:id/read", h.Notifications.MarkRead)

	api.GET("/schema", h.Schema.Describe)

	if h.Exports != nil {
		api.GET("/exports/requests", h.Exports.RequestRegister)
	}
}
