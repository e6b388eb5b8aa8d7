package mcp

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/kulesy/TimePro-MCP/internal/domain/timesheet"
)

type idParams struct {
	ID int
}

type createParams struct {
	Input timesheet.Input
}

type updateParams struct {
	ID    int
	Input timesheet.Input
}

func parseIDParams(p Params) (idParams, *Error) {
	id, ok := coerceID(p["id"])
	if !ok {
		return idParams{}, newError(CodeBadRequest, msgInvalidID)
	}
	return idParams{ID: id}, nil
}

func parseCreateParams(p Params) (createParams, *Error) {
	if p == nil {
		return createParams{}, newError(CodeBadRequest, msgNoParameters)
	}
	in, err := parseInput(p)
	if err != nil {
		return createParams{}, err
	}
	return createParams{Input: in}, nil
}

// parseUpdateParams validates the id before looking at any other field.
func parseUpdateParams(p Params) (updateParams, *Error) {
	id, ok := coerceID(p["id"])
	if !ok {
		return updateParams{}, newError(CodeBadRequest, msgInvalidID)
	}
	if p == nil {
		return updateParams{}, newError(CodeBadRequest, msgNoParameters)
	}
	in, err := parseInput(p)
	if err != nil {
		return updateParams{}, err
	}
	return updateParams{ID: id, Input: in}, nil
}

func parseInput(p Params) (timesheet.Input, *Error) {
	in := timesheet.Input{
		Date:    coerceString(p["date"]),
		Project: coerceString(p["project"]),
		Hours:   coerceHours(p["hours"]),
		Details: coerceString(p["details"]),
		Status:  coerceString(p["status"]),
		Client:  coerceString(p["client"]),
	}
	if in.Date == "" || in.Project == "" || in.Hours <= 0 {
		return timesheet.Input{}, newError(CodeBadRequest, msgMissingFields)
	}
	return in, nil
}

// coerceID accepts decimal integer text in the 32-bit range, with optional
// sign and surrounding whitespace. Numbers from in-process callers must be
// integral.
func coerceID(v any) (int, bool) {
	switch t := v.(type) {
	case json.Number:
		return parseIntText(t.String())
	case string:
		return parseIntText(t)
	case int:
		return t, t >= math.MinInt32 && t <= math.MaxInt32
	case int64:
		return int(t), t >= math.MinInt32 && t <= math.MaxInt32
	case float64:
		if t != math.Trunc(t) || t < math.MinInt32 || t > math.MaxInt32 {
			return 0, false
		}
		return int(t), true
	default:
		return 0, false
	}
}

func parseIntText(s string) (int, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// decimalText is plain decimal notation with an optional exponent. Go-only
// forms such as 1_0 or 0x1p3 are not numbers here.
var decimalText = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// coerceHours never fails: anything that is not a finite number or numeric
// string becomes 0.
func coerceHours(v any) float64 {
	var f float64
	switch t := v.(type) {
	case json.Number:
		f = parseDecimal(t.String())
	case string:
		f = parseDecimal(t)
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if !decimalText.MatchString(s) {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

func coerceString(v any) string {
	s, _ := v.(string)
	return s
}
