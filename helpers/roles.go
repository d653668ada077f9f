package helpers

import "strings"

// inspireRoles maps the 100/700 $e spellings met in legacy records to the
// inspire_roles vocabulary.
var inspireRoles = map[string]string{
	"ed":             "editor",
	"ed.":            "editor",
	"eds":            "editor",
	"eds.":           "editor",
	"editor":         "editor",
	"editors":        "editor",
	"dir.":           "supervisor",
	"supervisor":     "supervisor",
	"advisor":        "supervisor",
	"author":         "author",
	"aut":            "author",
	"edt":            "editor",
	"ths":            "supervisor",
	"thesis advisor": "supervisor",
}

// roleLabels are written back to $e.
var roleLabels = map[string]string{
	"editor": "ed.",
}

// NormalizeRole maps a free-form role to an inspire role, or "".
func NormalizeRole(role string) string {
	return inspireRoles[strings.ToLower(strings.TrimSpace(role))]
}

// RoleLabel returns the $e label for an inspire role, or "" when the role is
// carried by the tag itself (supervisors are 701) or is the default.
func RoleLabel(role string) string {
	return roleLabels[role]
}
