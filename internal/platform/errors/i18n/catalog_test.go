package i18n

import "testing"

func TestFormatRendersMetadata(t *testing.T) {
	cat := GetCatalog("en-US")

	got := cat.Format(CodeEventAuthorMismatch, map[string]string{
		"User":  "alice",
		"Event": "showcase",
	})
	if got != "alice is not the author of event showcase" {
		t.Fatalf("formatted = %q", got)
	}
}

func TestFormatNilMetadataRendersEmptyVariables(t *testing.T) {
	cat := GetCatalog("en-US")

	got := cat.Format(CodeInviteAlreadyExists, nil)
	if got != "An invite from  to  for this event already exists" {
		t.Fatalf("formatted = %q", got)
	}
}

func TestFormatUnknownCodeFallsBackToCode(t *testing.T) {
	cat := GetCatalog("en-US")

	if got := cat.Format("NO_SUCH_CODE", nil); got != "NO_SUCH_CODE" {
		t.Fatalf("formatted = %q", got)
	}
	if cat.Has("NO_SUCH_CODE") {
		t.Fatal("expected Has to be false for unknown code")
	}
}

func TestGetCatalogLocaleMatching(t *testing.T) {
	RegisterCatalog("pt-BR", NewCatalog("pt-BR", map[Code]string{
		CodeUserNotFound: "Usuário não encontrado",
	}))

	tests := []struct {
		name   string
		locale string
		want   string
	}{
		{"exact", "pt-BR", "pt-BR"},
		{"language only", "pt", "pt-BR"},
		{"unknown falls back", "fr-FR", "en-US"},
		{"empty falls back", "", "en-US"},
		{"garbage falls back", "not a locale", "en-US"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := GetCatalog(tc.locale).Locale(); got != tc.want {
				t.Fatalf("locale = %q, want %q", got, tc.want)
			}
		})
	}
}
