package services

import (
	"signops-backend/db/models"
)

// NavItem is one sidebar entry the frontend renders.
type NavItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

type navEntry struct {
	item       NavItem
	module     models.Module
	alwaysShow bool
}

// navRegistry is the full sidebar in display order. Entries gated on a
// module appear only when the user holds view on it.
var navRegistry = []navEntry{
	{item: NavItem{Key: "dashboard", Label: "Dashboard", Path: "/dashboard"}, alwaysShow: true},
	{item: NavItem{Key: "stores", Label: "Stores", Path: "/stores"}, module: models.ModuleStores},
	{item: NavItem{Key: "recce", Label: "Recce", Path: "/recce"}, module: models.ModuleRecce},
	{item: NavItem{Key: "installation", Label: "Installation", Path: "/installation"}, module: models.ModuleInstallation},
	{item: NavItem{Key: "clients", Label: "Clients", Path: "/clients"}, module: models.ModuleClients},
	{item: NavItem{Key: "elements", Label: "Elements", Path: "/elements"}, module: models.ModuleElements},
	{item: NavItem{Key: "enquiries", Label: "Enquiries", Path: "/enquiries"}, module: models.ModuleEnquiries},
	{item: NavItem{Key: "reports", Label: "Reports", Path: "/reports"}, module: models.ModuleReports},
	{item: NavItem{Key: "users", Label: "Users", Path: "/users"}, module: models.ModuleUsers},
	{item: NavItem{Key: "roles", Label: "Roles", Path: "/roles"}, module: models.ModuleRoles},
}

// BuildNavigation returns the sidebar entries the user is allowed to see.
func BuildNavigation(user *models.User) []NavItem {
	items := make([]NavItem, 0, len(navRegistry))
	for _, entry := range navRegistry {
		if entry.alwaysShow || user.CanView(entry.module) {
			items = append(items, entry.item)
		}
	}
	return items
}
