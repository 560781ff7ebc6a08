package access

import (
	"testing"

	"github.com/kimhsiao/eboard/internal/models"
)

func TestPolicy_Decide(t *testing.T) {
	owner := &models.User{ID: "a", Username: "A"}
	public := &models.User{ID: "p", Username: "P", Public: true}
	other := &models.User{ID: "b", Username: "B"}

	tests := []struct {
		name   string
		actor  *models.User
		target *models.User
		op     Op
		want   Decision
	}{
		{"missing target", owner, nil, Read, DenyNotFound},
		{"missing target anonymous", nil, nil, Read, DenyNotFound},
		{"anonymous", nil, owner, Read, DenyUnauthorized},
		{"owner read", owner, owner, Read, Allow},
		{"owner write", owner, owner, Write, Allow},
		{"private read", other, owner, Read, DenyNotFound},
		{"public read", other, public, Read, Allow},
		{"public write", other, public, Write, DenyNotFound},
	}

	var p Policy
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Decide(tt.actor, tt.target, tt.op); got != tt.want {
				t.Errorf("Decide() = %s, want %s", got, tt.want)
			}
		})
	}
}
