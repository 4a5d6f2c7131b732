package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"storedash/internal/repos"
)

func userForm(name, email, role, pass, confirm string) url.Values {
	return url.Values{
		"name": {name}, "email": {email}, "role": {role},
		"password": {pass}, "confirm_password": {confirm},
	}
}

func TestUsersListShowsSeededAccounts(t *testing.T) {
	h := newHarness(t, &backend{}, testOptions())
	h.signIn(t)

	b := body(t, h.get(t, "/users"))
	if n := strings.Count(b, "data-row"); n != 5 {
		t.Fatalf("expected 5 seeded users, got %d", n)
	}
	b = body(t, h.get(t, "/users?q=manager"))
	if n := strings.Count(b, "data-row"); n != 2 {
		t.Fatalf("expected 2 managers, got %d", n)
	}
}

func TestUserCreateEditDelete(t *testing.T) {
	h := newHarness(t, &backend{}, testOptions())
	h.signIn(t)

	resp := h.post(t, "/users", userForm("Ada Lovelace", "ada@shop.test", "Manager", "pw12345!", "pw12345!"))
	expectRedirect(t, resp, "/users")
	if got := flashOf(resp); got != "success|User created successfully" {
		t.Fatalf("unexpected flash %q", got)
	}

	u, err := repos.NewUserRepo(h.db).ByEmail("ada@shop.test")
	if err != nil {
		t.Fatalf("created user not stored: %v", err)
	}
	if u.Role != "Manager" || u.Status != "Active" {
		t.Fatalf("unexpected user %+v", u)
	}
	if strings.Contains(u.Hash, "pw12345!") {
		t.Fatal("password stored in plaintext")
	}

	b := body(t, h.get(t, "/users"))
	if strings.Count(b, "data-row") != 6 || !strings.Contains(b, "Ada Lovelace") {
		t.Fatal("new user not listed")
	}

	edit := body(t, h.get(t, "/users/"+u.ID+"/edit"))
	if !strings.Contains(edit, `value="ada@shop.test"`) || strings.Contains(edit, "pw12345!") {
		t.Fatal("edit form wrong")
	}

	resp = h.post(t, "/users/"+u.ID, userForm("Ada King", "ada@shop.test", "Staff", "", ""))
	expectRedirect(t, resp, "/users")
	got, _ := repos.NewUserRepo(h.db).ByID(u.ID)
	if got.Name != "Ada King" || got.Role != "Staff" || got.Hash != u.Hash {
		t.Fatalf("update wrong: %+v", got)
	}

	resp = h.post(t, "/users/"+u.ID+"/delete", nil)
	expectRedirect(t, resp, "/users")
	if got := flashOf(resp); got != "success|User deleted successfully" {
		t.Fatalf("unexpected flash %q", got)
	}
	if _, err := repos.NewUserRepo(h.db).ByID(u.ID); err == nil {
		t.Fatal("user not deleted")
	}
}

func TestUserFormValidation(t *testing.T) {
	h := newHarness(t, &backend{}, testOptions())
	h.signIn(t)

	cases := []struct {
		name string
		form url.Values
		want string
	}{
		{"mismatch", userForm("Bo", "bo@shop.test", "Staff", "abc12345", "abc12346"), "Passwords do not match"},
		{"missing", userForm("", "bo@shop.test", "Staff", "abc12345", "abc12345"), "Please fill in all required fields"},
		{"duplicate", userForm("Dup", "JOHN.SMITH@ponnamhardware.com", "Staff", "abc12345", "abc12345"), "A user with that email already exists"},
	}
	for _, tc := range cases {
		resp := h.post(t, "/users", tc.form)
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", tc.name, resp.StatusCode)
		}
		b := body(t, resp)
		if !strings.Contains(b, tc.want) {
			t.Fatalf("%s: message %q missing", tc.name, tc.want)
		}
		if strings.Contains(b, "abc12345") {
			t.Fatalf("%s: password echoed back", tc.name)
		}
	}
}

func TestUnknownUserEditIs404(t *testing.T) {
	h := newHarness(t, &backend{}, testOptions())
	h.signIn(t)
	if resp := h.get(t, "/users/user_999/edit"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
