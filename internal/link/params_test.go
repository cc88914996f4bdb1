package link

import (
	"errors"
	"strings"
	"testing"

	"github.com/mkosler/linkcast/internal/domain"
)

func TestBuildPreservesOrderAndFlags(t *testing.T) {
	params := []Param{
		KV("room", "x"),
		Flag("director"),
		KV("quality", "1080"),
	}
	got := Build("https://vdo.ninja/", params)
	want := "https://vdo.ninja/?room=x&director&quality=1080"
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}

func TestBuildNoParams(t *testing.T) {
	if got := Build("https://vdo.ninja/", nil); got != "https://vdo.ninja/?" {
		t.Errorf("Build with no params = %q", got)
	}
}

func TestHostParams(t *testing.T) {
	params, err := HostParams("Ark", "pw", "gm", "DM", true)
	if err != nil {
		t.Fatalf("HostParams: %v", err)
	}
	got := Build(BaseURL+"/", params)
	want := BaseURL + "/?room=Ark&director&password=pw&name=gm&label=gm/DM"
	if got != want {
		t.Errorf("host link = %q, want %q", got, want)
	}
}

func TestHostParamsOmissions(t *testing.T) {
	// Password excluded by policy.
	params, err := HostParams("Ark", "pw", "gm", "", false)
	if err != nil {
		t.Fatalf("HostParams: %v", err)
	}
	url := Build(BaseURL+"/", params)
	if strings.Contains(url, "password") {
		t.Errorf("excluded password leaked into %q", url)
	}
	if strings.Contains(url, "label") {
		t.Errorf("label emitted without a host character: %q", url)
	}

	// No host identity at all.
	params, err = HostParams("Ark", "", "", "", true)
	if err != nil {
		t.Fatalf("HostParams: %v", err)
	}
	url = Build(BaseURL+"/", params)
	if strings.Contains(url, "name=") {
		t.Errorf("name emitted without a host username: %q", url)
	}
}

func TestPlayerParamsPasswordPolicy(t *testing.T) {
	included, err := PlayerParams("Ark", "pw", "alice", "Rogue", "abc123", true)
	if err != nil {
		t.Fatalf("PlayerParams: %v", err)
	}
	url := Build(BaseURL+"/", included)
	if !strings.Contains(url, "&password=pw") {
		t.Errorf("included password missing from %q", url)
	}
	if strings.Contains(url, "requirepassword") {
		t.Errorf("requirepassword flag present when password included: %q", url)
	}

	excluded, err := PlayerParams("Ark", "pw", "alice", "Rogue", "abc123", false)
	if err != nil {
		t.Fatalf("PlayerParams: %v", err)
	}
	url = Build(BaseURL+"/", excluded)
	if strings.Contains(url, "password=pw") {
		t.Errorf("excluded password leaked into %q", url)
	}
	if !strings.HasSuffix(url, "&requirepassword") {
		t.Errorf("bare requirepassword flag missing from %q", url)
	}
}

func TestPlayerParamsContents(t *testing.T) {
	params, err := PlayerParams("Ark", "", "alice", "Rogue", "abc123", true)
	if err != nil {
		t.Fatalf("PlayerParams: %v", err)
	}
	url := Build(BaseURL+"/", params)
	for _, part := range []string{"room=Ark", "push=abc123", "meshcast=1", "quality=1080", "name=alice", "label=alice/Rogue"} {
		if !strings.Contains(url, part) {
			t.Errorf("player link %q missing %q", url, part)
		}
	}
	// Empty password with include policy still means "password required".
	if !strings.Contains(url, "requirepassword") {
		t.Errorf("empty password should require a prompt: %q", url)
	}
}

func TestSoloParams(t *testing.T) {
	params, err := SoloParams("Ark", "pw", "abc123", true)
	if err != nil {
		t.Fatalf("SoloParams: %v", err)
	}
	got := Build(BaseURL+"/", params)
	want := BaseURL + "/?view=abc123&solo&room=Ark&effects&password=pw"
	if got != want {
		t.Errorf("solo link = %q, want %q", got, want)
	}
}

func TestEmptyRoomFailsLoudly(t *testing.T) {
	if _, err := HostParams("", "pw", "gm", "DM", true); !errors.Is(err, domain.ErrRoomNotConfigured) {
		t.Errorf("HostParams error = %v, want ErrRoomNotConfigured", err)
	}
	if _, err := PlayerParams("", "pw", "alice", "Rogue", "abc", true); !errors.Is(err, domain.ErrRoomNotConfigured) {
		t.Errorf("PlayerParams error = %v, want ErrRoomNotConfigured", err)
	}
	if _, err := SoloParams("", "pw", "abc", true); !errors.Is(err, domain.ErrRoomNotConfigured) {
		t.Errorf("SoloParams error = %v, want ErrRoomNotConfigured", err)
	}
}
