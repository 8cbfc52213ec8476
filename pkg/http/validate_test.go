package http

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/labstack/echo/v4"
)

type regionQuery struct {
	Region string `query:"region" default:"all" validate:"oneof=all 'North America' Europe Asia Others"`
}

func TestSplitOneOf(t *testing.T) {
	cases := []struct {
		param string
		want  []string
	}{
		{"markets charts reserves", []string{"markets", "charts", "reserves"}},
		{"all 'North America' Europe", []string{"all", "North America", "Europe"}},
		{"'a b' 'c'", []string{"a b", "c"}},
		{"", nil},
	}
	for _, c := range cases {
		got := splitOneOf(c.param)
		if len(got) == 0 && len(c.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("splitOneOf(%q)=%q want %q", c.param, got, c.want)
		}
	}
}

func TestOneOfValidationEnvelope(t *testing.T) {
	e := echo.New()
	e.GET("/regions", func(c echo.Context) error {
		var q regionQuery
		if errs := ReadAndValidateRequest(c, &q); errs != nil {
			return BadRequestResponse(c, errs)
		}
		return SuccessResponse(c, q)
	})
	s := &Server{echo: e}

	rec, resp := do(t, s, http.MethodGet, "/regions?region=North%20America", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("quoted option rejected: code=%d body=%s", rec.Code, rec.Body.String())
	}

	rec, resp = do(t, s, http.MethodGet, "/regions?region=Mars", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code=%d want 400", rec.Code)
	}
	first := resp.Data.([]interface{})[0].(map[string]interface{})
	if first["code"] != "ERR_ONEOF" || first["field"] != "Region" {
		t.Fatalf("unexpected error %v", first)
	}
	want := "Region must be one of: all, North America, Europe, Asia, Others"
	if first["message"] != want {
		t.Fatalf("message=%q want %q", first["message"], want)
	}
	opts := first["params"].(map[string]interface{})["options"].([]interface{})
	if len(opts) != 5 || opts[1] != "North America" {
		t.Fatalf("options=%v", opts)
	}
}
