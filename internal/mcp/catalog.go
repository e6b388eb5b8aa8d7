package mcp

import "context"

// ParamKind is the declared type of a method parameter.
type ParamKind string

const (
	KindInt    ParamKind = "int"
	KindString ParamKind = "string"
	KindDouble ParamKind = "double"
)

// ParamSpec describes one declared parameter.
type ParamSpec struct {
	Name        string
	Kind        ParamKind
	Description string
	Required    bool
}

// MethodSpec is one entry of the closed method table.
type MethodSpec struct {
	Name        string
	Description string
	Params      []ParamSpec
	run         func(*Handler, context.Context, Params) Result
}

// Method names.
const (
	MethodList   = "timesheets/list"
	MethodGet    = "timesheets/get"
	MethodCreate = "timesheets/create"
	MethodUpdate = "timesheets/update"
	MethodDelete = "timesheets/delete"
)

var (
	paramID = ParamSpec{Name: "id", Kind: KindInt, Description: "Timesheet ID", Required: true}

	recordParams = []ParamSpec{
		{Name: "date", Kind: KindString, Description: "Date in YYYY-MM-DD format", Required: true},
		{Name: "project", Kind: KindString, Description: "Project name", Required: true},
		{Name: "hours", Kind: KindDouble, Description: "Hours worked", Required: true},
		{Name: "details", Kind: KindString, Description: "Work details", Required: true},
		{Name: "status", Kind: KindString, Description: "Status (Approved, Pending, Rejected)", Required: true},
		{Name: "client", Kind: KindString, Description: "Client name", Required: true},
	}
)

var catalog = []MethodSpec{
	{
		Name:        MethodList,
		Description: "Get all timesheets",
		run:         (*Handler).listTimesheets,
	},
	{
		Name:        MethodGet,
		Description: "Get a specific timesheet by ID",
		Params:      []ParamSpec{paramID},
		run:         (*Handler).getTimesheet,
	},
	{
		Name:        MethodCreate,
		Description: "Create a new timesheet",
		Params:      recordParams,
		run:         (*Handler).createTimesheet,
	},
	{
		Name:        MethodUpdate,
		Description: "Update an existing timesheet",
		Params:      append([]ParamSpec{paramID}, recordParams...),
		run:         (*Handler).updateTimesheet,
	},
	{
		Name:        MethodDelete,
		Description: "Delete a timesheet",
		Params:      []ParamSpec{paramID},
		run:         (*Handler).deleteTimesheet,
	},
}

var methodsByName = func() map[string]MethodSpec {
	m := make(map[string]MethodSpec, len(catalog))
	for _, entry := range catalog {
		m[entry.Name] = entry
	}
	return m
}()

// Catalog returns the method table in declaration order.
func Catalog() []MethodSpec {
	out := make([]MethodSpec, len(catalog))
	for i, entry := range catalog {
		entry.Params = append([]ParamSpec(nil), entry.Params...)
		out[i] = entry
	}
	return out
}

// MethodInfo is the discovery view of a method.
type MethodInfo struct {
	Method      string            `json:"method"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters"`
}

// Methods returns the capability listing.
func Methods() []MethodInfo {
	out := make([]MethodInfo, 0, len(catalog))
	for _, entry := range catalog {
		params := make(map[string]string, len(entry.Params))
		for _, p := range entry.Params {
			params[p.Name] = string(p.Kind)
		}
		out = append(out, MethodInfo{
			Method:      entry.Name,
			Description: entry.Description,
			Parameters:  params,
		})
	}
	return out
}
