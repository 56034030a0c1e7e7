package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServicesContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	v1 := r.Group("/api/v1")

	registerOrganizationRoutes(v1, services.OrgSvc)

	orgs := v1.Group("/orgs/:orgID")
	{
		registerChartRoutes(orgs, services.ChartSvc)
		registerRuleRoutes(orgs, services.RuleSvc)
		registerPeriodRoutes(orgs, services.PeriodSvc, services.ReportingSvc)
		registerTransactionRoutes(orgs, services.TxnSvc, services.ClassifierSvc)
		registerJournalRoutes(orgs, services.JournalSvc)
	}
}

// requestUserID resolves the acting user for audit fields. Authentication is
// handled upstream of this service; the gateway forwards the user id in a
// header. Absent the header, writes are attributed to the system user.
func requestUserID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return "system"
}
