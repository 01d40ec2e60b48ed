package sect

import (
	"github.com/saylorsolutions/sectomie/route"
)

// Route names of the application.
const (
	RouteHome                    = "Home"
	RouteSectPage                = "SectPage"
	RouteSectDetail              = "SectDetail"
	RouteDisciplesPage           = "DisciplesPage"
	RouteDiscipleDetail          = "DiscipleDetail"
	RouteCultivationPage         = "CultivationPage"
	RouteCultivation             = "Cultivation"
	RouteEventsPage              = "EventsPage"
	RouteResourcesPage           = "ResourcesPage"
	RouteKnowledgePage           = "KnowledgePage"
	RouteSectDashboard           = "SectDashboard"
	RouteDashboardDisciples      = "DashboardDisciples"
	RouteDashboardDiscipleDetail = "DashboardDiscipleDetail"
	RouteDashboardEvents         = "DashboardEvents"
	RouteDashboardResources      = "DashboardResources"
	RouteDashboardKnowledge      = "DashboardKnowledge"
	RouteDashboardCultivation    = "DashboardCultivation"
)

const (
	// CultivationAssignmentFlag is the query flag that tells the disciple view to open the cultivation assignment panel.
	CultivationAssignmentFlag = "showCultivationAssignment"
	// MetaUnderConstruction marks routes whose view is a placeholder.
	MetaUnderConstruction = "underConstruction"
)

func underConstruction() route.Meta {
	return route.Meta{MetaUnderConstruction: true}
}

// cultivationAssignment redirects a cultivation request for a disciple to the disciple's own view under prefix.
// The cultivation view was folded into the disciple view, so the flag is what restores the context.
func cultivationAssignment(prefix string) route.RedirectFunc {
	return route.RedirectTo(prefix+"/:id", route.Query{CultivationAssignmentFlag: "true"})
}

// Routes returns the application's route table.
// A new slice is returned each time, so callers can't affect each other.
func Routes() []route.Definition {
	return []route.Definition{
		{Path: "/", Name: RouteHome, Target: route.View{Component: "Home"}},
		{Path: "/sect", Name: RouteSectPage, Target: route.View{Component: "SectDashboard"}},
		{Path: "/sect/:id", Name: RouteSectDetail, Target: route.View{Component: "SectDetail"}},
		{Path: "/disciples", Name: RouteDisciplesPage, Target: route.View{Component: "DisciplesPage"}},
		{Path: "/disciple/:id", Name: RouteDiscipleDetail, Target: route.View{Component: "DiscipleDetail"}},
		{Path: "/cultivation", Name: RouteCultivationPage, Target: route.View{Component: "Cultivation"}},
		{Path: "/cultivation/:id", Name: RouteCultivation, Target: cultivationAssignment("/disciple")},
		{Path: "/events", Name: RouteEventsPage, Target: route.View{Component: "EventsPage"}},
		{Path: "/resources", Name: RouteResourcesPage, Target: route.View{Component: "EventsPage"}, Meta: underConstruction()},
		{Path: "/knowledge", Name: RouteKnowledgePage, Target: route.View{Component: "EventsPage"}, Meta: underConstruction()},
		{
			Path:   "/dashboard",
			Target: route.View{Component: "DashboardLayout"},
			Children: []route.Definition{
				{Path: "", Name: RouteSectDashboard, Target: route.View{Component: "SectDashboard"}},
				{Path: "disciples", Name: RouteDashboardDisciples, Target: route.View{Component: "DisciplesPage"}},
				{Path: "disciples/:id", Name: RouteDashboardDiscipleDetail, Target: route.View{Component: "DiscipleDetail"}},
				{Path: "events", Name: RouteDashboardEvents, Target: route.View{Component: "EventsPage"}},
				{Path: "resources", Name: RouteDashboardResources, Target: route.View{Component: "EventsPage"}, Meta: underConstruction()},
				{Path: "knowledge", Name: RouteDashboardKnowledge, Target: route.View{Component: "EventsPage"}, Meta: underConstruction()},
				{Path: "cultivation/:id", Name: RouteDashboardCultivation, Target: cultivationAssignment("/dashboard/disciples")},
			},
		},
	}
}
