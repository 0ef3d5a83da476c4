package storage

import (
	"testing"

	"github.com/oksasatya/gym-membership-directory/pkg/helpers"
)

func TestObjectPath(t *testing.T) {
	tests := []struct {
		memberID, filename, want string
	}{
		{"m-1", "me.PNG", "members/m-1/obj.png"},
		{"m-1", "no-extension", "members/m-1/obj"},
		{"m-1", "../../etc/passwd.jpg", "members/m-1/obj.jpg"},
		{"m-1", `C:\photos\me.jpeg`, "members/m-1/obj.jpeg"},
	}
	for _, tt := range tests {
		if got := objectPath(tt.memberID, "obj", tt.filename); got != tt.want {
			t.Errorf("objectPath(%q)=%q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestPublicURL(t *testing.T) {
	got := helpers.PublicURL("gym-photos", "members/m 1/obj.png")
	want := "https://storage.googleapis.com/gym-photos/members/m%201/obj.png"
	if got != want {
		t.Fatalf("PublicURL()=%q, want %q", got, want)
	}
}
