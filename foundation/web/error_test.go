package web

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
)

func TestIsRequestError(t *testing.T) {
	sentinel := errors.New("row missing")

	err := NewRequestError(sentinel, http.StatusNotFound)

	webErr, ok := IsRequestError(err)
	if !ok {
		t.Fatal("IsRequestError() = false, want true")
	}
	if webErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", webErr.Status, http.StatusNotFound)
	}
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is() does not reach the wrapped sentinel")
	}

	wrapped := errors.Wrap(err, "loading detail")
	if _, ok := IsRequestError(wrapped); !ok {
		t.Error("IsRequestError() = false for a wrapped request error")
	}

	if _, ok := IsRequestError(errors.New("plain")); ok {
		t.Error("IsRequestError() = true for a plain error")
	}
}

func TestCheckRequiredFields(t *testing.T) {
	type request struct {
		Name     *string
		SiteID   int
		Optional *string
	}

	name := "obra"

	tests := []struct {
		name    string
		obj     request
		fields  []string
		wantErr bool
	}{
		{"all set", request{Name: &name, SiteID: 3}, []string{"Name", "SiteID"}, false},
		{"nil pointer", request{SiteID: 3}, []string{"Name"}, true},
		{"zero value", request{Name: &name}, []string{"SiteID"}, true},
		{"comma separated", request{Name: &name, SiteID: 3}, []string{"Name,SiteID"}, false},
		{"unknown field", request{}, []string{"Missing"}, true},
		{"nothing required", request{}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRequiredFields(&tt.obj, tt.fields...)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckRequiredFields() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
