package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                                 "/",
		"/metrics":                         "/metrics",
		"/api/usuarios":                    "/api/usuarios",
		"/api/usuarios/42":                 "/api/usuarios/:id",
		"/api/usuarios/activar/7":          "/api/usuarios/activar/:id",
		"/api/usuarios/desactivar/7":       "/api/usuarios/desactivar/:id",
		"/api/atenciones":                  "/api/atenciones",
		"/api/atenciones?desde=2025-01-01": "/api/atenciones",
		"/api/bitacora":                    "/api/bitacora",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
