package finland

import (
	"strings"
	"sync"
	"testing"
	"time"

	apierrors "github.com/olgasafonova/finnish-id-mcp-server/internal/errors"
)

func TestValidateSSN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid 1900s", "131052-308T", true},
		{"valid 1900s second", "010190-123M", true},
		{"valid 2000s", "010101A123N", true},
		{"valid 1800s", "010150+123A", true},
		{"leap day 2000", "290200A1239", true},

		{"leap day 1900", "290200-123Y", false},
		{"wrong check character", "131052-308X", false},
		{"empty", "", false},
		{"too short", "131052-308", false},
		{"lowercase check character", "131052-308t", false},
		{"lowercase century marker", "010101a123N", false},
		{"unknown century marker", "131052B308T", false},
		{"february 31st", "310290-123A", false},
		{"letters in date", "13AB52-308T", false},
		{"letters in individual number", "131052-3A8T", false},
		{"leading whitespace", " 131052-308T", false},
		{"trailing whitespace", "131052-308T ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateSSN(tt.input); got != tt.want {
				t.Errorf("ValidateSSN(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCheckSSN_Reasons(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason apierrors.Reason
	}{
		{"empty", "", apierrors.ReasonRequired},
		{"too short", "131052-308", apierrors.ReasonLength},
		{"padded", " 131052-308T", apierrors.ReasonLength},
		{"space as marker", "131052 308T", apierrors.ReasonCentury},
		{"lowercase a", "010101a123N", apierrors.ReasonCentury},
		{"B marker", "131052B308T", apierrors.ReasonCentury},
		{"space in date keeps length", " 31052-308T", apierrors.ReasonFormat},
		{"letters in date", "13AB52-308T", apierrors.ReasonFormat},
		{"letters in individual", "131052-3A8T", apierrors.ReasonFormat},
		{"day zero", "001052-308T", apierrors.ReasonDate},
		{"month 13", "131352-308T", apierrors.ReasonDate},
		{"month zero", "130052-308T", apierrors.ReasonDate},
		{"april 31st", "310452-308T", apierrors.ReasonDate},
		{"1900 not leap", "290200-1239", apierrors.ReasonDate},
		{"space as check", "131052-308 ", apierrors.ReasonCheckCharacter},
		{"wrong check", "131052-308X", apierrors.ReasonCheckCharacter},
		{"lowercase check", "131052-308t", apierrors.ReasonCheckCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSSN(tt.input)
			if err == nil {
				t.Fatalf("CheckSSN(%q) = nil, want reason %q", tt.input, tt.reason)
			}
			if got := apierrors.ReasonOf(err); got != tt.reason {
				t.Errorf("CheckSSN(%q) reason = %q, want %q", tt.input, got, tt.reason)
			}
			if tt.input != "" && strings.Contains(err.Error(), tt.input) {
				t.Errorf("error %q leaks the identity code", err.Error())
			}
		})
	}
}

func TestParseSSN(t *testing.T) {
	tests := []struct {
		input  string
		birth  time.Time
		marker byte
		sex    Sex
	}{
		{"131052-308T", time.Date(1952, time.October, 13, 0, 0, 0, 0, time.UTC), '-', SexFemale},
		{"010190-123M", time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC), '-', SexMale},
		{"010101A123N", time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC), 'A', SexMale},
		{"010150+123A", time.Date(1850, time.January, 1, 0, 0, 0, 0, time.UTC), '+', SexMale},
		{"290200A1239", time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC), 'A', SexMale},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ssn, err := ParseSSN(tt.input)
			if err != nil {
				t.Fatalf("ParseSSN(%q) error = %v", tt.input, err)
			}
			if !ssn.BirthDate.Equal(tt.birth) {
				t.Errorf("BirthDate = %v, want %v", ssn.BirthDate, tt.birth)
			}
			if ssn.CenturyMarker != tt.marker {
				t.Errorf("CenturyMarker = %q, want %q", ssn.CenturyMarker, tt.marker)
			}
			if ssn.Sex != tt.sex {
				t.Errorf("Sex = %q, want %q", ssn.Sex, tt.sex)
			}
			if ssn.IndividualNumber != tt.input[7:10] {
				t.Errorf("IndividualNumber = %q, want %q", ssn.IndividualNumber, tt.input[7:10])
			}
			if ssn.CheckCharacter != tt.input[10] {
				t.Errorf("CheckCharacter = %q, want %q", ssn.CheckCharacter, tt.input[10])
			}
		})
	}
}

func TestValidateSSN_LengthGate(t *testing.T) {
	base := strings.Repeat("131052-308T", 3)
	for n := 0; n <= len(base); n++ {
		if n == SSNLength {
			continue
		}
		if ValidateSSN(base[:n]) {
			t.Errorf("ValidateSSN accepted %d-character input %q", n, base[:n])
		}
	}
}

func TestValidateSSN_ExactlyOneCheckCharacter(t *testing.T) {
	prefixes := []string{"131052-308", "010190-123", "010101A123", "010150+123", "290200A123", "311299-999", "010100A000"}

	for _, prefix := range prefixes {
		t.Run(prefix, func(t *testing.T) {
			accepted := 0
			for c := 0; c < 256; c++ {
				if ValidateSSN(prefix + string([]byte{byte(c)})) {
					accepted++
				}
			}
			if accepted != 1 {
				t.Errorf("%d check characters accepted for %q, want exactly 1", accepted, prefix)
			}
		})
	}
}

func TestValidateSSN_CaseSensitive(t *testing.T) {
	valid := []string{"131052-308T", "010190-123M", "010101A123N", "010150+123A"}

	for _, s := range valid {
		lower := strings.ToLower(s)
		if lower == s {
			continue
		}
		if ValidateSSN(lower) {
			t.Errorf("ValidateSSN(%q) = true, lowercase must be rejected", lower)
		}
	}
}

func TestValidateSSN_Whitespace(t *testing.T) {
	valid := "131052-308T"
	for _, ws := range []string{" ", "\t", "\n", "\r", "\u00a0"} {
		for _, s := range []string{ws + valid, valid + ws, ws + valid[1:], valid[:10] + ws, valid[:6] + ws + valid[7:]} {
			if ValidateSSN(s) {
				t.Errorf("ValidateSSN(%q) = true, whitespace must be rejected", s)
			}
		}
	}
}

func TestCompleteSSN(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		want       string
		wantReason apierrors.Reason
	}{
		{"1900s", "131052-308", "131052-308T", ""},
		{"1800s", "010150+123", "010150+123A", ""},
		{"2000s", "010100A123", "010100A123D", ""},
		{"leap day 2000", "290200A123", "290200A123" + string(ssnCheckChars[290200123%31]), ""},
		{"empty", "", "", apierrors.ReasonRequired},
		{"too short", "131052-30", "", apierrors.ReasonLength},
		{"full code", "131052-308T", "", apierrors.ReasonLength},
		{"unknown marker", "131052X308", "", apierrors.ReasonCentury},
		{"lowercase marker", "131052a308", "", apierrors.ReasonCentury},
		{"letter in date", "1310X2-308", "", apierrors.ReasonFormat},
		{"february 31", "310252-308", "", apierrors.ReasonDate},
		{"february 29 in 1900", "290200-123", "", apierrors.ReasonDate},
		{"month 13", "011352-308", "", apierrors.ReasonDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompleteSSN(tt.payload)
			if tt.wantReason != "" {
				if err == nil {
					t.Fatalf("CompleteSSN(%q) = %q, want %s error", tt.payload, got, tt.wantReason)
				}
				if r := apierrors.ReasonOf(err); r != tt.wantReason {
					t.Errorf("reason = %q, want %q", r, tt.wantReason)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CompleteSSN(%q) = %q, want %q", tt.payload, got, tt.want)
			}
		})
	}
}

func TestCompleteSSN_AlwaysValidates(t *testing.T) {
	markers := []byte{'+', '-', 'A', 'a', 'B', 'X'}
	days := []string{"00", "01", "28", "29", "30", "31", "32"}
	months := []string{"00", "01", "02", "04", "12", "13"}
	years := []string{"00", "04", "52", "99"}

	for _, d := range days {
		for _, m := range months {
			for _, y := range years {
				for _, c := range markers {
					payload := d + m + y + string(c) + "308"
					code, err := CompleteSSN(payload)
					if err != nil {
						for i := 0; i < len(ssnCheckChars); i++ {
							if ValidateSSN(payload + string(ssnCheckChars[i])) {
								t.Errorf("CompleteSSN(%q) rejected a payload that validates", payload)
							}
						}
						continue
					}
					if !ValidateSSN(code) {
						t.Errorf("CompleteSSN(%q) = %q, which does not validate", payload, code)
					}
				}
			}
		}
	}
}

func TestSSNCheckCharacter(t *testing.T) {
	tests := []struct {
		payload string
		want    byte
		ok      bool
	}{
		{"131052308", 'T', true},
		{"010190123", 'M', true},
		{"000000000", '0', true},
		{"000000030", 'Y', true},
		{"13105230", 0, false},
		{"13105230X", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			got, ok := SSNCheckCharacter(tt.payload)
			if ok != tt.ok || got != tt.want {
				t.Errorf("SSNCheckCharacter(%q) = %q, %v; want %q, %v", tt.payload, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSSNCheckChars_Alphabet(t *testing.T) {
	if len(ssnCheckChars) != 31 {
		t.Fatalf("check alphabet has %d characters, want 31", len(ssnCheckChars))
	}
	for _, c := range "GIOQ" {
		if strings.ContainsRune(ssnCheckChars, c) {
			t.Errorf("check alphabet must not contain %q", c)
		}
	}
}

func TestMaskSSN(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"131052-308T", "131052-****"},
		{"1310", "****"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := MaskSSN(tt.input); got != tt.want {
			t.Errorf("MaskSSN(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidateSSN_Concurrent(t *testing.T) {
	inputs := map[string]bool{
		"131052-308T": true,
		"290200-123Y": false,
		"290200A1239": true,
		"131052-308X": false,
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for input, want := range inputs {
			wg.Add(1)
			go func(input string, want bool) {
				defer wg.Done()
				if got := ValidateSSN(input); got != want {
					t.Errorf("ValidateSSN(%q) = %v, want %v", input, got, want)
				}
			}(input, want)
		}
	}
	wg.Wait()
}

func BenchmarkValidateSSN(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ValidateSSN("131052-308T")
	}
}
