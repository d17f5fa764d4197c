package ref

import "testing"

func TestParseAndString(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"main", []string{"main"}},
		{"main.vm.ip", []string{"main", "vm", "ip"}},
	}
	for _, tt := range tests {
		r := Parse(tt.input)
		if len(r) != len(tt.want) {
			t.Fatalf("Parse(%q): want %d segments, got %d", tt.input, len(tt.want), len(r))
		}
		for i := range tt.want {
			if r[i] != tt.want[i] {
				t.Errorf("Parse(%q)[%d]: want %q, got %q", tt.input, i, tt.want[i], r[i])
			}
		}
		if got := r.String(); got != tt.input {
			t.Errorf("Parse(%q).String(): got %q", tt.input, got)
		}
	}
}

func TestIsPrefixOf(t *testing.T) {
	tests := []struct {
		prefix string
		full   string
		want   bool
	}{
		{"main", "main.vm", true},
		{"main", "main", true}, // a reference is a prefix of itself
		{"", "main", true},
		{"main.vm", "main", false},
		{"main.vm", "main.web", false},
	}
	for _, tt := range tests {
		if got := Parse(tt.prefix).IsPrefixOf(Parse(tt.full)); got != tt.want {
			t.Errorf("%q.IsPrefixOf(%q): want %v, got %v", tt.prefix, tt.full, tt.want, got)
		}
	}
}

func TestQualify(t *testing.T) {
	q := Parse("vm.ip").Qualify(Parse("main"))
	if q.String() != "main.vm.ip" {
		t.Errorf("Qualify: want main.vm.ip, got %s", q)
	}
	if q := Parse("x").Qualify(Ref{}); q.String() != "x" {
		t.Errorf("Qualify against root: want x, got %s", q)
	}
}

func TestParentAndLast(t *testing.T) {
	r := Parse("a.b.c")
	if got := r.Parent().String(); got != "a.b" {
		t.Errorf("Parent: want a.b, got %s", got)
	}
	if got := r.Last(); got != "c" {
		t.Errorf("Last: want c, got %s", got)
	}
	root := Ref{}
	if got := root.Parent(); len(got) != 0 {
		t.Errorf("Parent of root: want root, got %s", got)
	}
	if got := root.Last(); got != "" {
		t.Errorf("Last of root: want empty, got %q", got)
	}
}

func TestStripPrefix(t *testing.T) {
	rest, ok := Parse("main.vm.ip").StripPrefix(Parse("main"))
	if !ok || rest.String() != "vm.ip" {
		t.Fatalf("StripPrefix: want vm.ip, got %s (ok=%v)", rest, ok)
	}
	if _, ok := Parse("main.vm").StripPrefix(Parse("web")); ok {
		t.Error("StripPrefix with non-prefix should report false")
	}
}

func TestAppendDoesNotAliasParent(t *testing.T) {
	base := Parse("a.b")
	c1 := base.Append("c")
	c2 := base.Append("d")
	if c1.String() != "a.b.c" || c2.String() != "a.b.d" {
		t.Fatalf("Append aliased its receiver: %s, %s", c1, c2)
	}
	p := Parse("a.b.c").Parent()
	q := p.Append("x")
	if q.String() != "a.b.x" {
		t.Errorf("Append after Parent: want a.b.x, got %s", q)
	}
}
