package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHandler(t *testing.T) {
	t.Run("role omitted falls back to reader", func(t *testing.T) {
		shelf := NewShelf()
		api := newTestAPIHandler(&shelf)

		body := `{"name": "ana", "email": "ana@example.com"}`
		r := newRequestWithID(http.MethodPost, "/users", strings.NewReader(body))
		w := httptest.NewRecorder()
		api.CreateUser(w, r, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json; charset=UTF-8", w.Header().Get("Content-Type"))
		expected := `{"id":1,"name":"ana","email":"ana@example.com","role":"reader"}`
		assert.JSONEq(t, expected, w.Body.String())
		require.Len(t, shelf.Users, 1)
		assert.Equal(t, int64(2), shelf.NextUserID)
	})

	t.Run("explicit role is kept", func(t *testing.T) {
		shelf := NewShelf()
		api := newTestAPIHandler(&shelf)

		body := `{"name": "bob", "email": "bob@example.com", "role": "admin"}`
		r := newRequestWithID(http.MethodPost, "/users", strings.NewReader(body))
		w := httptest.NewRecorder()
		api.CreateUser(w, r, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		expected := `{"id":1,"name":"bob","email":"bob@example.com","role":"admin"}`
		assert.JSONEq(t, expected, w.Body.String())
	})

	t.Run("invalid fields", func(t *testing.T) {
		testCases := []struct {
			name string
			body string
			data string
		}{
			{
				name: "missing name",
				body: `{"email": "ana@example.com"}`,
				data: "name is required",
			},
			{
				name: "missing email",
				body: `{"name": "ana"}`,
				data: "email is required",
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				shelf := NewShelf()
				api := newTestAPIHandler(&shelf)

				r := newRequestWithID(http.MethodPost, "/users", strings.NewReader(tc.body))
				w := httptest.NewRecorder()
				api.CreateUser(w, r, nil)

				assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
				expected := fmt.Sprintf(`{"requestid":"r:abc","status":422,"message":"failed to create the user","data":%q}`, tc.data)
				assert.JSONEq(t, expected, w.Body.String())
				assert.Empty(t, shelf.Users)
			})
		}
	})
}

func TestGetAllUsersHandler(t *testing.T) {
	t.Run("no user created yet", func(t *testing.T) {
		shelf := NewShelf()
		api := newTestAPIHandler(&shelf)

		r := newRequestWithID(http.MethodGet, "/users", nil)
		w := httptest.NewRecorder()
		api.GetAllUsers(w, r, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("filled shelf", func(t *testing.T) {
		shelf := Shelf{
			Books:      []Book{},
			NextBookID: 1,
			Users: []User{
				{ID: 1, Name: "ana", Email: "ana@example.com", Role: "admin"},
				{ID: 2, Name: "bob", Email: "bob@example.com", Role: "reader"},
			},
			NextUserID: 3,
		}
		api := newTestAPIHandler(&shelf)

		r := newRequestWithID(http.MethodGet, "/users", nil)
		w := httptest.NewRecorder()
		api.GetAllUsers(w, r, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		expected := `[
			{"id":1,"name":"ana","email":"ana@example.com","role":"admin"},
			{"id":2,"name":"bob","email":"bob@example.com","role":"reader"}
		]`
		assert.JSONEq(t, expected, w.Body.String())
	})
}

func TestGetOneUserHandler(t *testing.T) {
	shelf := Shelf{
		Books:      []Book{},
		NextBookID: 1,
		Users:      []User{{ID: 1, Name: "ana", Email: "ana@example.com", Role: "reader"}},
		NextUserID: 2,
	}

	t.Run("existing user", func(t *testing.T) {
		api := newTestAPIHandler(&shelf)

		r := newRequestWithID(http.MethodGet, "/users/1", nil)
		w := httptest.NewRecorder()
		api.GetOneUser(w, r, httprouter.Params{{Key: "id", Value: "1"}})

		assert.Equal(t, http.StatusOK, w.Code)
		expected := `{"id":1,"name":"ana","email":"ana@example.com","role":"reader"}`
		assert.JSONEq(t, expected, w.Body.String())
	})

	t.Run("unknown user", func(t *testing.T) {
		api := newTestAPIHandler(&shelf)

		r := newRequestWithID(http.MethodGet, "/users/42", nil)
		w := httptest.NewRecorder()
		api.GetOneUser(w, r, httprouter.Params{{Key: "id", Value: "42"}})

		assert.Equal(t, http.StatusNotFound, w.Code)
		expected := `{"requestid":"r:abc","status":404,"message":"user does not exist","data":{}}`
		assert.JSONEq(t, expected, w.Body.String())
	})

	t.Run("invalid user id", func(t *testing.T) {
		api := newTestAPIHandler(&shelf)

		r := newRequestWithID(http.MethodGet, "/users/abc", nil)
		w := httptest.NewRecorder()
		api.GetOneUser(w, r, httprouter.Params{{Key: "id", Value: "abc"}})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		expected := `{"requestid":"r:abc","status":422,"message":"user id provided is not valid","data":"record id must be a positive integer"}`
		assert.JSONEq(t, expected, w.Body.String())
	})
}

func TestUpdateUserHandler(t *testing.T) {
	t.Run("existing user with role omitted", func(t *testing.T) {
		shelf := Shelf{
			Books:      []Book{},
			NextBookID: 1,
			Users:      []User{{ID: 1, Name: "ana", Email: "ana@example.com", Role: "admin"}},
			NextUserID: 2,
		}
		api := newTestAPIHandler(&shelf)

		body := `{"name": "anna", "email": "anna@example.com"}`
		r := newRequestWithID(http.MethodPut, "/users/1", strings.NewReader(body))
		w := httptest.NewRecorder()
		api.UpdateUser(w, r, httprouter.Params{{Key: "id", Value: "1"}})

		assert.Equal(t, http.StatusOK, w.Code)
		expected := `{"id":1,"name":"anna","email":"anna@example.com","role":"reader"}`
		assert.JSONEq(t, expected, w.Body.String())
		assert.Equal(t, User{ID: 1, Name: "anna", Email: "anna@example.com", Role: "reader"}, shelf.Users[0])
	})

	t.Run("unknown user", func(t *testing.T) {
		shelf := NewShelf()
		api := newTestAPIHandler(&shelf)

		body := `{"name": "ghost", "email": "ghost@example.com"}`
		r := newRequestWithID(http.MethodPut, "/users/42", strings.NewReader(body))
		w := httptest.NewRecorder()
		api.UpdateUser(w, r, httprouter.Params{{Key: "id", Value: "42"}})

		assert.Equal(t, http.StatusNotFound, w.Code)
		expected := `{"requestid":"r:abc","status":404,"message":"user does not exist","data":{}}`
		assert.JSONEq(t, expected, w.Body.String())
	})

	t.Run("invalid fields", func(t *testing.T) {
		shelf := Shelf{
			Books:      []Book{},
			NextBookID: 1,
			Users:      []User{{ID: 1, Name: "ana", Email: "ana@example.com", Role: "reader"}},
			NextUserID: 2,
		}
		api := newTestAPIHandler(&shelf)

		r := newRequestWithID(http.MethodPut, "/users/1", strings.NewReader(`{"name": "ana"}`))
		w := httptest.NewRecorder()
		api.UpdateUser(w, r, httprouter.Params{{Key: "id", Value: "1"}})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		expected := `{"requestid":"r:abc","status":422,"message":"failed to update the user","data":"email is required"}`
		assert.JSONEq(t, expected, w.Body.String())
		assert.Equal(t, "ana@example.com", shelf.Users[0].Email)
	})
}

func TestDeleteOneUserHandler(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		shelf := Shelf{
			Books:      []Book{},
			NextBookID: 1,
			Users:      []User{{ID: 1, Name: "ana", Email: "ana@example.com", Role: "reader"}},
			NextUserID: 2,
		}
		api := newTestAPIHandler(&shelf)

		r := newRequestWithID(http.MethodDelete, "/users/1", nil)
		w := httptest.NewRecorder()
		api.DeleteOneUser(w, r, httprouter.Params{{Key: "id", Value: "1"}})

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Empty(t, shelf.Users)
	})

	t.Run("unknown user", func(t *testing.T) {
		shelf := NewShelf()
		api := newTestAPIHandler(&shelf)

		r := newRequestWithID(http.MethodDelete, "/users/42", nil)
		w := httptest.NewRecorder()
		api.DeleteOneUser(w, r, httprouter.Params{{Key: "id", Value: "42"}})

		assert.Equal(t, http.StatusNotFound, w.Code)
		expected := `{"requestid":"r:abc","status":404,"message":"user does not exist","data":{}}`
		assert.JSONEq(t, expected, w.Body.String())
	})
}
