package router

import (
	"estate_market/constants"
	"estate_market/handler"
	"estate_market/middleware"
	"estate_market/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/logout", handler.Logout)

	staffOnly := middleware.RequireRole(constants.ROLE_ADMIN, constants.ROLE_MODERATOR)
	adminOnly := middleware.RequireRole(constants.ROLE_ADMIN)

	account := v1.Group("/account", middleware.Protected())
	account.Get("/", adminOnly, handler.GetAccounts)
	account.Get("/me", handler.Me)
	account.Get("/me/status", handler.GetMyStatus)
	account.Get("/me/apartments", handler.GetMyApartments)
	account.Get("/search", handler.SearchAccountByPhone)
	account.Patch("/:accountId/status", adminOnly, validate.GetById("accountId"), validate.UpdateAccountStatus(), handler.UpdateAccountStatus)

	builder := v1.Group("/builder")
	builder.Get("/managers", middleware.Protected(), handler.GetManagers)
	builder.Post("/managers", middleware.Protected(), validate.AddManager(), handler.AddManager)
	builder.Put("/managers/:managerId", middleware.Protected(), validate.GetById("managerId"), validate.UpdateManager(), handler.UpdateManager)
	builder.Delete("/managers/:managerId", middleware.Protected(), validate.GetById("managerId"), handler.RemoveManager)
	builder.Get("/:builderId", validate.GetById("builderId"), handler.GetBuilderById)
	builder.Get("/:builderId/projects", validate.GetById("builderId"), handler.GetBuilderProjects)
	builder.Get("/:builderId/capabilities", middleware.Protected(), validate.GetById("builderId"), handler.GetMyCapabilities)

	project := v1.Group("/project")
	project.Get("/", validate.FilterProject(), handler.GetProjects)
	project.Post("/", middleware.Protected(), validate.CreateProject(), handler.CreateProject)
	project.Get("/:projectId", validate.GetById("projectId"), handler.GetProjectById)
	project.Get("/:projectId/buildings", validate.GetById("projectId"), handler.GetProjectBuildings)
	project.Get("/:projectId/access", middleware.Protected(), validate.GetById("projectId"), handler.CheckProjectAccess)
	project.Post("/:projectId/support-chat", middleware.Protected(), validate.GetById("projectId"), handler.StartSupportChat)

	building := v1.Group("/building")
	building.Post("/", middleware.Protected(), validate.CreateBuilding(), handler.CreateBuilding)
	building.Get("/:buildingId", validate.GetById("buildingId"), handler.GetBuildingById)

	floorPlan := v1.Group("/floor-plan")
	floorPlan.Get("/", validate.FilterFloorPlan(), handler.GetFloorPlan)
	floorPlan.Put("/", middleware.Protected(), validate.SaveFloorPlan(), handler.SaveFloorPlan)
	floorPlan.Get("/:floorPlanId", validate.GetById("floorPlanId"), handler.GetFloorPlanById)
	floorPlan.Delete("/:floorPlanId", middleware.Protected(), validate.GetById("floorPlanId"), handler.DeleteFloorPlan)
	floorPlan.Put("/:floorPlanId/image", middleware.Protected(), validate.GetById("floorPlanId"), validate.FloorPlanImage(), handler.UpdateFloorPlanImage)
	floorPlan.Get("/:floorPlanId/view", middleware.OptionalJWT(), validate.GetById("floorPlanId"), handler.ViewFloorPlan)
	floorPlan.Get("/:floorPlanId/overlay.svg", middleware.OptionalJWT(), validate.GetById("floorPlanId"), handler.FloorPlanOverlay)

	editor := v1.Group("/editor", middleware.Protected())
	editor.Post("/", validate.OpenEditor(), handler.OpenEditorSession)
	editor.Get("/:sessionId", handler.GetEditorSession)
	editor.Delete("/:sessionId", handler.CloseEditorSession)
	editor.Get("/:sessionId/overlay.svg", handler.EditorOverlay)
	editor.Post("/:sessionId/start", handler.EditorStartDrawing)
	editor.Post("/:sessionId/point", validate.AddPoint(), handler.EditorAddPoint)
	editor.Post("/:sessionId/finish", handler.EditorFinishShape)
	editor.Post("/:sessionId/cancel", handler.EditorCancel)
	editor.Post("/:sessionId/confirm", validate.ApartmentForm(), handler.EditorConfirm)
	editor.Post("/:sessionId/discard", handler.EditorDiscard)
	editor.Post("/:sessionId/select", validate.SelectApartment(), handler.EditorSelect)
	editor.Post("/:sessionId/deselect", handler.EditorDeselect)
	editor.Post("/:sessionId/delete", handler.EditorDelete)

	apartment := v1.Group("/apartment")
	apartment.Get("/:apartmentId", handler.GetApartment)
	apartment.Get("/:apartmentId/qr", middleware.Protected(), handler.ApartmentQRCode)
	apartment.Post("/:apartmentId/claim", middleware.Protected(), handler.ClaimApartment)
	apartment.Post("/:apartmentId/approve", middleware.Protected(), handler.ApproveClaim)
	apartment.Post("/:apartmentId/reject", middleware.Protected(), handler.RejectClaim)
	apartment.Put("/:apartmentId/status", middleware.Protected(), adminOnly, validate.UpdateApartmentStatus(), handler.UpdateApartmentStatus)

	moderation := v1.Group("/moderation", middleware.Protected())
	moderation.Post("/verification", validate.SubmitVerification(), handler.SubmitVerification)
	moderation.Post("/builder-application", validate.SubmitBuilderApplication(), handler.SubmitBuilderApplication)
	moderation.Get("/verification", staffOnly, handler.GetPendingVerifications)
	moderation.Get("/builder-application", staffOnly, handler.GetPendingBuilderApplications)
	moderation.Post("/verification/:requestId/review", staffOnly, validate.GetById("requestId"), validate.Review(), handler.ReviewVerification)
	moderation.Post("/builder-application/:applicationId/review", staffOnly, validate.GetById("applicationId"), validate.Review(), handler.ReviewBuilderApplication)

	v1.Get("/stats", middleware.Protected(), staffOnly, handler.GetSystemStats)

	chat := v1.Group("/chat", middleware.Protected())
	chat.Get("/", handler.GetChatSessions)
	chat.Get("/:chatId/messages", handler.GetChatMessages)
	chat.Post("/:chatId/messages", validate.SendMessage(), handler.SendChatMessage)

	ws := app.Group("/ws")
	ws.Get("/floor-plan/:floorPlanId", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}, websocket.New(handler.FloorPlanSocket))
	ws.Get("/chat/:chatId", middleware.Protected(), handler.ChatSocketGuard, websocket.New(handler.ChatSocket))
}
