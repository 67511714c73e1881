package auth

import (
	"sort"

	"github.com/RommelSharma23/travel-admin-sub001/internal/models"
)

// PermissionWildcard is the sentinel tag granting every permission.
const PermissionWildcard = "*"

// Permission tags. A tag names one allowed action as "resource:verb".
const (
	PermDestinationsRead   = "destinations:read"
	PermDestinationsWrite  = "destinations:write"
	PermDestinationsDelete = "destinations:delete"
	PermCategoriesRead     = "categories:read"
	PermCategoriesWrite    = "categories:write"
	PermCategoriesDelete   = "categories:delete"
	PermPackagesRead       = "packages:read"
	PermPackagesWrite      = "packages:write"
	PermPackagesDelete     = "packages:delete"
	PermBlogsRead          = "blogs:read"
	PermBlogsWrite         = "blogs:write"
	PermBlogsDelete        = "blogs:delete"
	PermMediaRead          = "media:read"
	PermMediaWrite         = "media:write"
	PermMediaDelete        = "media:delete"
	PermInquiriesRead      = "inquiries:read"
	PermInquiriesWrite     = "inquiries:write"
	PermInquiriesUpdate    = "inquiries:update"
	PermPDFGenerate        = "pdf:generate"
	PermPDFDownload        = "pdf:download"
	PermAdminsRead         = "admins:read"
)

// Definition describes one permission tag for UI and validation purposes.
type Definition struct {
	Tag    string // The permission tag.
	Module string // Owning dashboard module.
	Label  string // Human-readable label.
}

// definitions enumerates every known permission tag.
var definitions = []Definition{
	{Tag: PermDestinationsRead, Module: "destinations", Label: "View destinations"},
	{Tag: PermDestinationsWrite, Module: "destinations", Label: "Create and edit destinations"},
	{Tag: PermDestinationsDelete, Module: "destinations", Label: "Delete destinations"},
	{Tag: PermCategoriesRead, Module: "categories", Label: "View categories"},
	{Tag: PermCategoriesWrite, Module: "categories", Label: "Create and edit categories"},
	{Tag: PermCategoriesDelete, Module: "categories", Label: "Delete categories"},
	{Tag: PermPackagesRead, Module: "packages", Label: "View tour packages"},
	{Tag: PermPackagesWrite, Module: "packages", Label: "Create and edit tour packages"},
	{Tag: PermPackagesDelete, Module: "packages", Label: "Delete tour packages"},
	{Tag: PermBlogsRead, Module: "blogs", Label: "View blog posts"},
	{Tag: PermBlogsWrite, Module: "blogs", Label: "Create and edit blog posts"},
	{Tag: PermBlogsDelete, Module: "blogs", Label: "Delete blog posts"},
	{Tag: PermMediaRead, Module: "media", Label: "View media"},
	{Tag: PermMediaWrite, Module: "media", Label: "Upload and edit media"},
	{Tag: PermMediaDelete, Module: "media", Label: "Delete media"},
	{Tag: PermInquiriesRead, Module: "inquiries", Label: "View inquiries"},
	{Tag: PermInquiriesWrite, Module: "inquiries", Label: "Respond to inquiries"},
	{Tag: PermInquiriesUpdate, Module: "inquiries", Label: "Update inquiry status"},
	{Tag: PermPDFGenerate, Module: "pdf", Label: "Generate itinerary PDFs"},
	{Tag: PermPDFDownload, Module: "pdf", Label: "Download itinerary PDFs"},
	{Tag: PermAdminsRead, Module: "admins", Label: "View admin accounts"},
}

// rolePermissions is the authorization policy: an explicit, immutable mapping
// from role to allowed tags. There is deliberately no "super_admin_only" tag;
// callers needing that gate compare the role directly.
var rolePermissions = map[string][]string{
	models.RoleSuperAdmin: {PermissionWildcard},
	models.RoleContentManager: {
		PermDestinationsRead, PermDestinationsWrite, PermDestinationsDelete,
		PermCategoriesRead, PermCategoriesWrite, PermCategoriesDelete,
		PermPackagesRead, PermPackagesWrite, PermPackagesDelete,
		PermBlogsRead, PermBlogsWrite, PermBlogsDelete,
		PermMediaRead, PermMediaWrite, PermMediaDelete,
		PermInquiriesRead, PermInquiriesWrite, PermInquiriesUpdate,
		PermPDFGenerate, PermPDFDownload,
	},
	models.RoleStaff: {
		PermInquiriesRead, PermInquiriesWrite, PermInquiriesUpdate,
		PermPDFGenerate, PermPDFDownload,
	},
}

// Definitions returns all permission definitions sorted by tag.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// DefinitionMap returns the known tags keyed for validation.
func DefinitionMap() map[string]Definition {
	out := make(map[string]Definition, len(definitions))
	for _, def := range definitions {
		out[def.Tag] = def
	}
	return out
}

// RolePermissions returns the allowed tags for a role. Unknown roles get an
// empty set.
func RolePermissions(role string) []string {
	tags, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

// roleAllows reports whether a role's set contains the wildcard or the tag.
func roleAllows(role, tag string) bool {
	for _, allowed := range rolePermissions[role] {
		if allowed == PermissionWildcard || allowed == tag {
			return true
		}
	}
	return false
}
