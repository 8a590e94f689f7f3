package sequence

import (
	"errors"
	"strings"
	"testing"
)

func TestDefine(t *testing.T) {
	c, err := Define("TestSequence", 0, 1)
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	if c.Name() != "TestSequence" {
		t.Fatalf("name = %q, want TestSequence", c.Name())
	}
	if c.Flag() != 3 {
		t.Fatalf("flag = %s, want 0x3", c.Flag())
	}
	if c.NumSequences() != 2 {
		t.Fatalf("sequences = %d, want 2", c.NumSequences())
	}
	if !c.IsMember(1) || c.IsMember(5) {
		t.Fatal("unexpected membership")
	}
	ids := c.IDs()
	if len(ids) != 2 || ids[0] != 0 || ids[1] != 1 {
		t.Fatalf("ids = %v, want [0 1]", ids)
	}
}

func TestDefineNamesComposition(t *testing.T) {
	_, err := Define("Broken", 1, 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Broken") {
		t.Fatalf("error = %q, want composition name", err.Error())
	}
}

func TestMustDefinePanics(t *testing.T) {
	defer func() {
		recovered := recover()
		err, ok := recovered.(error)
		if !ok {
			t.Fatalf("panic value = %v, want error", recovered)
		}
		if !errors.Is(err, ErrIDUnordered) {
			t.Fatalf("panic error = %v, want unordered", err)
		}
	}()
	MustDefine("Backwards", 1, 0)
	t.Fatal("expected panic")
}

func TestMustMatch(t *testing.T) {
	c := MustMatch("TestSequence", 0x3, 0, 1)
	if c.Flag() != 0x3 {
		t.Fatalf("flag = %s, want 0x3", c.Flag())
	}
}

func TestMustMatchPanicsOnIdentityDrift(t *testing.T) {
	tests := []struct {
		name  string
		want  Flag
		ids   []ID
		index int
	}{
		{name: "changed id", want: 0x3, ids: []ID{0, 2}, index: 1},
		{name: "missing member", want: 0x7, ids: []ID{0, 1}, index: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(error)
				if !ok {
					t.Fatal("expected error panic")
				}
				var compErr *CompositionError
				if !errors.As(err, &compErr) {
					t.Fatalf("panic type = %T, want *CompositionError", err)
				}
				if !errors.Is(err, ErrIdentityMismatch) {
					t.Fatalf("panic error = %v, want identity mismatch", err)
				}
				if compErr.Index != tc.index {
					t.Fatalf("index = %d, want %d", compErr.Index, tc.index)
				}
			}()
			MustMatch("Drifted", tc.want, tc.ids...)
		})
	}
}

func TestCompositionErrorAppError(t *testing.T) {
	_, err := Define("TestSequence", 0, 0)
	var compErr *CompositionError
	if !errors.As(err, &compErr) {
		t.Fatalf("error type = %T", err)
	}
	appErr := compErr.AppError()
	if appErr.Code != ErrIDDuplicate.Code {
		t.Fatalf("code = %s, want %s", appErr.Code, ErrIDDuplicate.Code)
	}
	if appErr.Metadata["Composition"] != "TestSequence" || appErr.Metadata["ID"] != "0" {
		t.Fatalf("metadata = %v", appErr.Metadata)
	}
}
