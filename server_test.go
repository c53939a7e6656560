package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/models"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/utils"
)

func postUsersAs(t *testing.T, role string, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/users", userCreateHandler())

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(utils.SetRoleInContext(req.Context(), role))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserCreateRequiresOwnerRole(t *testing.T) {
	for _, role := range []string{string(models.UserRoleOperator), string(models.UserRoleSupervisor), ""} {
		w := postUsersAs(t, role, `{"username":"nuevo","password":"secreto"}`)
		if w.Code != http.StatusForbidden {
			t.Errorf("role %q: status = %d, want %d", role, w.Code, http.StatusForbidden)
		}
	}
}

func TestUserCreateRejectsInvalidBody(t *testing.T) {
	w := postUsersAs(t, string(models.UserRoleOwner), `{"username":"nuevo"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d for missing password", w.Code, http.StatusBadRequest)
	}
}
