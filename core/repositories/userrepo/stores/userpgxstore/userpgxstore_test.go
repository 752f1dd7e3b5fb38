package userpgxstore

import (
	"testing"

	"github.com/jrazmi/usergraph/core/repositories/userrepo"
)

func TestToUser(t *testing.T) {
	email := "alice@example.com"

	tests := []struct {
		name string
		in   row
		want userrepo.User
	}{
		{"with email", row{UserID: "1", Name: "Alice", Email: &email}, userrepo.User{ID: "1", Name: "Alice", Email: email}},
		{"null email", row{UserID: "2", Name: "Bob"}, userrepo.User{ID: "2", Name: "Bob"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toUser(tt.in); got != tt.want {
				t.Errorf("toUser() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
