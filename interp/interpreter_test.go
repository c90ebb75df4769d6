package interp

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/pontaoski/golox/errors"
	"github.com/pontaoski/golox/lexer"
	"github.com/pontaoski/golox/parser"
	"github.com/pontaoski/golox/resolver"
)

func run(t *testing.T, in *Interpreter, source string) error {
	t.Helper()
	toks, errs := lexer.Scan(source)
	if len(errs) > 0 {
		t.Fatalf("unexpected lexical errors: %v", errs)
	}
	stmts, errs := parser.Parse(toks)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	locals, errs := resolver.Resolve(stmts)
	if len(errs) > 0 {
		t.Fatalf("unexpected resolve errors: %v", errs)
	}
	return in.Interpret(stmts, locals)
}

func expectOutput(t *testing.T, source string, want ...string) {
	t.Helper()
	var out bytes.Buffer
	if err := run(t, New(&out), source); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	got := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if out.Len() == 0 {
		got = nil
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func expectRuntimeError(t *testing.T, source string, message string, line int) string {
	t.Helper()
	var out bytes.Buffer
	err := run(t, New(&out), source)
	if err == nil {
		t.Fatalf("expected runtime error %q, got none", message)
	}
	var rerr *errors.RuntimeError
	if !stderrors.As(err, &rerr) {
		t.Fatalf("expected *errors.RuntimeError, got %T: %v", err, err)
	}
	if rerr.Message != message {
		t.Errorf("got message %q, want %q", rerr.Message, message)
	}
	if rerr.Line() != line {
		t.Errorf("got line %d, want %d", rerr.Line(), line)
	}
	return out.String()
}

func TestArithmeticAndPrint(t *testing.T) {
	expectOutput(t, `
print 1 + 2;
print "a" + "b";
print 7 / 2;
print -3 * 2;
print 10 - 2 - 3;
print 1 < 2;
print 2 <= 1;
print nil;
print !nil;
print !0;
print 1 == 1;
print "1" == 1;
print nil == false;
print nil == nil;
print 1 / 0;
`, "3", "ab", "3.5", "-6", "5", "true", "false", "nil", "true", "false", "true", "false", "false", "true", "Infinity")
}

func TestLogicalShortCircuit(t *testing.T) {
	expectOutput(t, `
print nil or "default";
print 0 or "unused";
print false and undefinedName;
print 1 and 2;
`, "default", "0", "false", "2")
}

func TestTypeErrors(t *testing.T) {
	expectRuntimeError(t, `print "a" + 1;`, "Operands must be two numbers or two strings.", 1)
	expectRuntimeError(t, "\nprint 1 < \"2\";", "Operands must be numbers.", 2)
	expectRuntimeError(t, `print -"x";`, "Operand must be a number.", 1)
	expectRuntimeError(t, `print nil * 2;`, "Operands must be numbers.", 1)
}

func TestUndefinedVariable(t *testing.T) {
	expectRuntimeError(t, "print x;", "Undefined variable 'x'.", 1)
	expectRuntimeError(t, "x = 1;", "Undefined variable 'x'.", 1)
}

func TestRuntimeErrorHaltsRun(t *testing.T) {
	out := expectRuntimeError(t, `
print "before";
print x;
print "after";
`, "Undefined variable 'x'.", 3)
	if out != "before\n" {
		t.Errorf("evaluation should stop at the first runtime error, got %q", out)
	}
}

func TestScopes(t *testing.T) {
	expectOutput(t, `
var a = "global a";
var b = "global b";
{
  var a = "outer a";
  {
    var a = "inner a";
    print a;
    print b;
    b = "changed";
  }
  print a;
}
print a;
print b;
var a = "redeclared";
print a;
`, "inner a", "global b", "outer a", "global a", "changed", "redeclared")
}

func TestStaticScopeIsNotDynamic(t *testing.T) {
	expectOutput(t, `
var a = "global";
{
  fun show() { print a; }
  show();
  var a = "block";
  show();
}
`, "global", "global")
}

func TestClosureCounter(t *testing.T) {
	expectOutput(t, `
fun makeCounter() {
  var i = 0;
  fun count() { i = i + 1; print i; }
  return count;
}
var c = makeCounter();
c();
c();
var d = makeCounter();
d();
c();
`, "1", "2", "1", "3")
}

func TestClosuresShareEnvironment(t *testing.T) {
	expectOutput(t, `
var get;
var set;
fun make() {
  var v = "initial";
  fun g() { return v; }
  fun s(x) { v = x; }
  get = g;
  set = s;
}
make();
print get();
set("updated");
print get();
`, "initial", "updated")
}

func TestControlFlow(t *testing.T) {
	expectOutput(t, `
for (var i = 0; i < 3; i = i + 1) print i;
var n = 0;
while (n < 2) { n = n + 1; }
print n;
if (n == 2) print "yes"; else print "no";
if (nil) print "yes"; else print "no";
`, "0", "1", "2", "2", "yes", "no")
}

func TestReturnUnwindsLoops(t *testing.T) {
	expectOutput(t, `
fun find(limit) {
  var i = 0;
  while (true) {
    for (;;) {
      if (i >= limit) { return i; }
      i = i + 1;
    }
  }
}
print find(4);
fun nothing() { 1; }
print nothing();
fun early() { return; print "unreachable"; }
print early();
`, "4", "nil", "nil")
}

func TestRecursion(t *testing.T) {
	expectOutput(t, `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(15);
`, "610")
}

func TestArity(t *testing.T) {
	expectRuntimeError(t, "fun f(a, b) {}\nf(1);", "Expected 2 arguments but got 1.", 2)
	expectRuntimeError(t, "fun f() {}\nf(1, 2, 3);", "Expected 0 arguments but got 3.", 2)
	expectRuntimeError(t, "class A { init(x) {} }\nA();", "Expected 1 arguments but got 0.", 2)
	expectRuntimeError(t, "class A {}\nA(1);", "Expected 0 arguments but got 1.", 2)
	expectRuntimeError(t, "clock(1);", "Expected 0 arguments but got 1.", 1)
	expectOutput(t, "fun f(a, b, c) { return a + b + c; }\nprint f(1, 2, 3);", "6")
}

func TestVariadicNative(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	in.Globals().Define("count", &NativeFunction{
		Name:     "count",
		Variadic: true,
		Fn: func(args []interface{}) (interface{}, error) {
			return float64(len(args)), nil
		},
	})
	if err := run(t, in, "print count(); print count(1, nil, \"x\");"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if out.String() != "0\n3\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestNotCallable(t *testing.T) {
	expectRuntimeError(t, `"str"();`, "Can only call functions and classes.", 1)
	expectRuntimeError(t, `var x = nil; x();`, "Can only call functions and classes.", 1)
}

func TestNatives(t *testing.T) {
	expectOutput(t, `
print clock;
print clock() > 0;
print len([1, 2, 3]);
print len("héllo");
`, "<native fn>", "true", "3", "5")
	expectRuntimeError(t, "len(1);", "Can't take the length of 1.", 1)
}

func TestClasses(t *testing.T) {
	expectOutput(t, `
class Point {
  init(x, y) { this.x = x; this.y = y; }
  sum() { return this.x + this.y; }
}
var p = Point(1, 2);
print p.sum();
print p;
print Point;
print p.sum;
p.x = 10;
print p.sum();
var m = p.sum;
p.y = 5;
print m();
`, "3", "Point instance", "Point", "<fn sum>", "12", "15")
}

func TestFieldsShadowMethods(t *testing.T) {
	expectOutput(t, `
class A { f() { return "method"; } }
var a = A();
print a.f();
a.f = "field";
print a.f;
`, "method", "field")
}

func TestInitializer(t *testing.T) {
	expectOutput(t, `
class A {
  init() { this.v = 1; return; }
}
var a = A();
print a.v;
print a.init();
print a.init() == a;
`, "1", "A instance", "true")
}

func TestInheritanceAndSuper(t *testing.T) {
	expectOutput(t, `
class A {
  f() { print "A.f " + this.name; }
  g() { print "A.g"; }
}
class B < A {
  f() { print "B.f"; super.f(); }
}
class C < B {
  f() { print "C.f"; super.f(); }
}
var c = C();
c.name = "c";
c.f();
c.g();
var b = B();
b.name = "b";
b.f();
`, "C.f", "B.f", "A.f c", "A.g", "B.f", "A.f b")
}

func TestInheritedInitializer(t *testing.T) {
	expectOutput(t, `
class A { init(v) { this.v = v; } }
class B < A {
  init(v) { super.init(v * 2); }
}
print B(21).v;
`, "42")
}

func TestClassErrors(t *testing.T) {
	expectRuntimeError(t, "var NotClass = 1;\nclass A < NotClass {}", "Superclass must be a class.", 2)
	expectRuntimeError(t, "class A {}\nA().missing;", "Undefined property 'missing'.", 2)
	expectRuntimeError(t, "class A {}\nclass B < A { f() { super.missing(); } }\nB().f();", "Undefined property 'missing'.", 2)
	expectRuntimeError(t, "var x = 1;\nx.y;", "Only instances have properties.", 2)
	expectRuntimeError(t, "var x = 1;\nx.y = 2;", "Only instances have fields.", 2)
}

func TestArrays(t *testing.T) {
	expectOutput(t, `
var xs = [1, "two", nil, [3.5]];
print xs;
print xs[0];
xs[0] = xs[0] + 10;
print xs[0];
print xs[3][0];
print [];
var ys = xs;
ys[1] = "changed";
print xs[1];
print [1] == [1];
print xs == ys;
`, `[1, "two", nil, [3.5]]`, "1", "11", "3.5", "[]", "changed", "false", "true")
}

func TestArrayErrors(t *testing.T) {
	expectRuntimeError(t, "var xs = [1];\nprint xs[1];", "Array index out of bounds.", 2)
	expectRuntimeError(t, "var xs = [1];\nxs[-1] = 2;", "Array index out of bounds.", 2)
	expectRuntimeError(t, "var xs = [1];\nprint xs[0.5];", "Array index must be an integer.", 2)
	expectRuntimeError(t, "var xs = [1];\nprint xs[\"0\"];", "Array index must be an integer.", 2)
	expectRuntimeError(t, "var s = \"str\";\nprint s[0];", "Expected an array.", 2)
}

func TestSelfReferencingArray(t *testing.T) {
	expectOutput(t, `
var xs = [1, nil];
xs[1] = xs;
print xs;
`, "[1, [...]]")
}

func TestStackOverflow(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	in.MaxDepth = 50

	err := run(t, in, "fun f(n) { return f(n + 1); }\nf(0);")
	var rerr *errors.RuntimeError
	if !stderrors.As(err, &rerr) || rerr.Message != "Stack overflow." {
		t.Fatalf("expected stack overflow, got %v", err)
	}

	// the interpreter is usable again afterwards
	if err := run(t, in, "fun g(n) { if (n > 0) return g(n - 1); return \"done\"; }\nprint g(40);"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if out.String() != "done\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestCallDepthLimitedByDefault(t *testing.T) {
	in := New(&bytes.Buffer{})
	if in.MaxDepth != DefaultMaxDepth {
		t.Fatalf("got MaxDepth %d, want %d", in.MaxDepth, DefaultMaxDepth)
	}

	err := run(t, in, "fun f() { f(); }\nf();")
	var rerr *errors.RuntimeError
	if !stderrors.As(err, &rerr) || rerr.Message != "Stack overflow." || rerr.Line() != 1 {
		t.Fatalf("expected stack overflow on line 1, got %v", err)
	}
}

func TestGlobalsPersistAcrossRuns(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	if err := run(t, in, "var a = 1; fun inc() { a = a + 1; }"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, in, "inc(); print a;"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "2\n" {
		t.Errorf("got %q", out.String())
	}
}
