package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodbridge/internal/api/http/handlers"
	"github.com/spec-kit/bloodbridge/internal/auth"
	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Admin     *handlers.AdminHandler
	Hospital  *handlers.HospitalHandler
	User      *handlers.UserHandler
	Donations *handlers.DonationsHandler
	Guard     *auth.Guard
}

// actionRoute declares which methods an action supports and who may call
// it. Public routes skip the guard; an empty role means any authenticated
// caller.
type actionRoute struct {
	public  bool
	role    domain.Role
	methods map[string]fiber.Handler
}

type actionTable map[string]actionRoute

// RegisterRoutes wires HTTP routes. Each endpoint group dispatches on the
// `action` query parameter against its declarative table: unknown actions
// are 400, unsupported methods 405, and the guard runs before any
// protected handler.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", indexHandler)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.All("/auth", dispatch(cfg.Guard, actionTable{
		"register": {public: true, methods: map[string]fiber.Handler{
			fiber.MethodPost: cfg.Auth.Register,
		}},
		"login": {public: true, methods: map[string]fiber.Handler{
			fiber.MethodPost: cfg.Auth.Login,
		}},
		"profile": {methods: map[string]fiber.Handler{
			fiber.MethodGet: cfg.Auth.Profile,
			fiber.MethodPut: cfg.Auth.UpdateProfile,
		}},
		"password": {methods: map[string]fiber.Handler{
			fiber.MethodPut: cfg.Auth.ChangePassword,
		}},
	}))

	app.All("/admin", dispatch(cfg.Guard, actionTable{
		"overview":          get(domain.RoleAdmin, cfg.Admin.Overview),
		"hospitals":         get(domain.RoleAdmin, cfg.Admin.Hospitals),
		"users":             get(domain.RoleAdmin, cfg.Admin.Users),
		"donations":         get(domain.RoleAdmin, cfg.Admin.Donations),
		"credits":           get(domain.RoleAdmin, cfg.Admin.Credits),
		"analytics":         get(domain.RoleAdmin, cfg.Admin.Analytics),
		"verify_hospital":   put(domain.RoleAdmin, cfg.Admin.VerifyHospital),
		"adjust_credits":    put(domain.RoleAdmin, cfg.Admin.AdjustCredits),
		"send_notification": post(domain.RoleAdmin, cfg.Admin.SendNotification),
		"user_status":       put(domain.RoleAdmin, cfg.Admin.UserStatus),
	}))

	app.All("/hospital", dispatch(cfg.Guard, actionTable{
		"overview":          get(domain.RoleHospital, cfg.Hospital.Overview),
		"blood_requests":    get(domain.RoleHospital, cfg.Hospital.BloodRequests),
		"donors":            get(domain.RoleHospital, cfg.Hospital.Donors),
		"donations":         get(domain.RoleHospital, cfg.Hospital.Donations),
		"inventory":         get(domain.RoleHospital, cfg.Hospital.Inventory),
		"statistics":        get(domain.RoleHospital, cfg.Hospital.Statistics),
		"create_request":    post(domain.RoleHospital, cfg.Hospital.CreateRequest),
		"record_donation":   post(domain.RoleHospital, cfg.Hospital.RecordDonation),
		"update_inventory":  put(domain.RoleHospital, cfg.Hospital.UpdateInventory),
		"send_notification": post(domain.RoleHospital, cfg.Hospital.SendNotification),
		"update_request":    put(domain.RoleHospital, cfg.Hospital.UpdateRequest),
	}))

	app.All("/user", dispatch(cfg.Guard, actionTable{
		"overview":         get(domain.RoleDonor, cfg.User.Overview),
		"donation_history": get(domain.RoleDonor, cfg.User.DonationHistory),
		"find_hospitals":   get(domain.RoleDonor, cfg.User.FindHospitals),
		"profile": {role: domain.RoleDonor, methods: map[string]fiber.Handler{
			fiber.MethodGet: cfg.User.Profile,
			fiber.MethodPut: cfg.User.UpdateProfile,
		}},
		"achievements":           get(domain.RoleDonor, cfg.User.Achievements),
		"notifications":          get(domain.RoleDonor, cfg.User.Notifications),
		"credit_history":         get(domain.RoleDonor, cfg.User.CreditHistory),
		"eligibility":            get(domain.RoleDonor, cfg.User.Eligibility),
		"emergency_alerts":       get(domain.RoleDonor, cfg.User.EmergencyAlerts),
		"mark_notification_read": put(domain.RoleDonor, cfg.User.MarkNotificationRead),
	}))

	app.All("/donations", dispatch(cfg.Guard, actionTable{
		"all":                {public: true, methods: map[string]fiber.Handler{fiber.MethodGet: cfg.Donations.All}},
		"statistics":         {public: true, methods: map[string]fiber.Handler{fiber.MethodGet: cfg.Donations.Statistics}},
		"blood_requests":     {public: true, methods: map[string]fiber.Handler{fiber.MethodGet: cfg.Donations.BloodRequests}},
		"emergency_requests": {public: true, methods: map[string]fiber.Handler{fiber.MethodGet: cfg.Donations.EmergencyRequests}},
		"by_id":              {public: true, methods: map[string]fiber.Handler{fiber.MethodGet: cfg.Donations.ByID}},
		"search":             {public: true, methods: map[string]fiber.Handler{fiber.MethodGet: cfg.Donations.Search}},
		"inventory_summary":  {public: true, methods: map[string]fiber.Handler{fiber.MethodGet: cfg.Donations.InventorySummary}},
		"analytics":          {public: true, methods: map[string]fiber.Handler{fiber.MethodGet: cfg.Donations.Analytics}},
		"export":             {public: true, methods: map[string]fiber.Handler{fiber.MethodGet: cfg.Donations.Export}},
	}))
}

func dispatch(guard *auth.Guard, table actionTable) fiber.Handler {
	return func(c *fiber.Ctx) error {
		route, ok := table[c.Query("action")]
		if !ok {
			return util.NewValidationError("Invalid action", nil)
		}
		handler, ok := route.methods[c.Method()]
		if !ok {
			return util.NewMethodNotAllowed()
		}

		if !route.public {
			var err error
			if route.role != "" {
				_, err = guard.Authorize(c, route.role)
			} else {
				_, err = guard.Authenticate(c)
			}
			if err != nil {
				return err
			}
		}
		return handler(c)
	}
}

func get(role domain.Role, h fiber.Handler) actionRoute {
	return actionRoute{role: role, methods: map[string]fiber.Handler{fiber.MethodGet: h}}
}

func post(role domain.Role, h fiber.Handler) actionRoute {
	return actionRoute{role: role, methods: map[string]fiber.Handler{fiber.MethodPost: h}}
}

func put(role domain.Role, h fiber.Handler) actionRoute {
	return actionRoute{role: role, methods: map[string]fiber.Handler{fiber.MethodPut: h}}
}

func indexHandler(c *fiber.Ctx) error {
	return handlers.Respond(c, fiber.StatusOK, "BloodBridge API is running", fiber.Map{
		"endpoints": fiber.Map{
			"auth":      []string{"register", "login", "profile", "password"},
			"admin":     []string{"overview", "hospitals", "users", "donations", "credits", "analytics", "verify_hospital", "adjust_credits", "send_notification", "user_status"},
			"hospital":  []string{"overview", "blood_requests", "donors", "donations", "inventory", "statistics", "create_request", "record_donation", "update_inventory", "send_notification", "update_request"},
			"user":      []string{"overview", "donation_history", "find_hospitals", "profile", "achievements", "notifications", "credit_history", "eligibility", "emergency_alerts", "mark_notification_read"},
			"donations": []string{"all", "statistics", "blood_requests", "emergency_requests", "by_id", "search", "inventory_summary", "analytics", "export"},
		},
		"authentication": "Bearer token required for protected endpoints",
	})
}
