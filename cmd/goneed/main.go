package main

import (
	"fmt"
	"os"
	"time"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	"github.com/vic/goneed/pkg/lambda"
	"github.com/vic/goneed/pkg/need"
)

type demo struct {
	name string
	desc string
	run  func(m *need.Machine) (string, error)
}

var demos = []demo{
	{"church_add", "plus 2 3 normalizes to the Church numeral 5", demoChurchAdd},
	{"church_mul", "times 2 3 counted with a native increment", demoChurchMul},
	{"lazy_k", "K discards a diverging argument without forcing it", demoLazyK},
	{"shared_arg", "a shared argument is computed once across two uses", demoSharedArg},
	{"factorial", "fixpoint factorial over native integers", demoFactorial},
	{"black_hole", "a self-referential binding is detected, not looped", demoBlackHole},
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: goneed [-d demo] [-s] [-t] [-l]\n")
	fmt.Fprintf(os.Stderr, "  -d demo  run a single demo by name\n")
	fmt.Fprintf(os.Stderr, "  -s       print reduction statistics\n")
	fmt.Fprintf(os.Stderr, "  -t       record and print a reduction trace\n")
	fmt.Fprintf(os.Stderr, "  -l       list demos\n")
}

func main() {
	var (
		only      string
		showStats bool
		showTrace bool
		listOnly  bool
	)

	opts, _, err := getopt.Getopts(os.Args, "d:stlh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "goneed: %v\n", err)
		usage()
		os.Exit(1)
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'd':
			only = opt.Value
		case 's':
			showStats = true
		case 't':
			showTrace = true
		case 'l':
			listOnly = true
		default:
			usage()
			os.Exit(0)
		}
	}

	if listOnly {
		for _, d := range demos {
			fmt.Printf("%-12s %s\n", d.name, d.desc)
		}
		return
	}

	header := color.New(color.FgCyan, color.Bold)
	okCol := color.New(color.FgGreen)
	errCol := color.New(color.FgRed)

	ran := 0
	for _, d := range demos {
		if only != "" && d.name != only {
			continue
		}
		ran++

		m := need.NewMachine()
		if showTrace {
			m.EnableTrace(1000)
		}

		header.Printf("== %s ==\n", d.name)
		fmt.Printf("%s\n", d.desc)

		start := time.Now()
		out, err := d.run(m)
		elapsed := time.Since(start)

		if err != nil {
			errCol.Printf("error: %v\n", err)
		} else {
			okCol.Printf("%s\n", out)
		}

		if showTrace {
			for _, ev := range m.TraceSnapshot() {
				fmt.Fprintf(os.Stderr, "  step %4d: %-8s env=%d %s\n",
					ev.Step, ev.Kind, ev.EnvLen, ev.Term)
			}
		}
		if showStats {
			printStats(m.GetStats(), elapsed)
		}
		fmt.Println()
	}

	if only != "" && ran == 0 {
		fmt.Fprintf(os.Stderr, "goneed: unknown demo %q\n", only)
		os.Exit(1)
	}
}

func printStats(stats need.Stats, elapsed time.Duration) {
	seconds := elapsed.Seconds()

	fmt.Fprintf(os.Stderr, "Stats:\n")
	fmt.Fprintf(os.Stderr, "Time: %v\n", elapsed)
	fmt.Fprintf(os.Stderr, "Total Steps: %d", stats.TotalSteps)
	if seconds > 0 {
		fmt.Fprintf(os.Stderr, " (%.2f ops/sec)", float64(stats.TotalSteps)/seconds)
	}
	fmt.Fprintf(os.Stderr, "\n")

	fmt.Fprintf(os.Stderr, "Breakdown:\n")
	fmt.Fprintf(os.Stderr, "  Beta:         %6d\n", stats.Beta)
	fmt.Fprintf(os.Stderr, "  Lookups:      %6d\n", stats.Lookups)
	fmt.Fprintf(os.Stderr, "  Forces:       %6d\n", stats.Forces)
	fmt.Fprintf(os.Stderr, "  Memo Hits:    %6d\n", stats.MemoHits)
	fmt.Fprintf(os.Stderr, "  Suspensions:  %6d\n", stats.Suspensions)
	if stats.NativeCalls > 0 {
		fmt.Fprintf(os.Stderr, "  Native Calls: %6d\n", stats.NativeCalls)
	}
}

func demoChurchAdd(m *need.Machine) (string, error) {
	term := lambda.Application(lambda.Application(lambda.Plus, lambda.Church(2)), lambda.Church(3))
	nf, err := m.Normalize(term)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("plus 2 3 → %s (five: %s)", nf, lambda.Church(5)), nil
}

func demoChurchMul(m *need.Machine) (string, error) {
	term := lambda.Application(lambda.Application(lambda.Times, lambda.Church(2)), lambda.Church(3))
	n, err := churchToInt(m, term)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("times 2 3 → %d", n), nil
}

func demoLazyK(m *need.Machine) (string, error) {
	// (λx. λy. x) id Ω — Ω would diverge if forced.
	term := lambda.Application(lambda.Application(lambda.True, lambda.Identity), lambda.Omega)
	nf, err := m.Normalize(term)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("K id Ω → %s (Ω never forced)", nf), nil
}

func demoSharedArg(m *need.Machine) (string, error) {
	var count int
	tick := need.Native{Name: "tick", Fn: func(m *need.Machine, arg *need.Thunk) (need.Value, error) {
		count++
		return need.Closure{Body: lambda.Variable(0)}, nil
	}}
	env := (*need.Env)(nil).Extend(m.FromValue(tick))

	// (λx. x x) (tick 0) — x is demanded twice, computed once.
	term := lambda.Application(
		lambda.Abstraction(lambda.Application(lambda.Variable(0), lambda.Variable(0))),
		lambda.Application(lambda.Variable(0), lambda.Integer(0)))
	if _, err := m.Eval(term, env); err != nil {
		return "", err
	}
	return fmt.Sprintf("argument evaluated %d time(s)", count), nil
}

func demoFactorial(m *need.Machine) (string, error) {
	env := (*need.Env)(nil).
		Extend(m.FromValue(nativeIf0())).
		Extend(m.FromValue(nativeMul())).
		Extend(m.FromValue(nativeSub1()))
	// Bindings by index at top level: 0 = sub1, 1 = mul, 2 = if0.
	// Under the two binders of λf. λn they shift to 2, 3 and 4.
	body := lambda.Application(
		lambda.Application(
			lambda.Application(lambda.Variable(4), lambda.Variable(0)),
			lambda.Integer(1)),
		lambda.Application(
			lambda.Application(lambda.Variable(3), lambda.Variable(0)),
			lambda.Application(lambda.Variable(1),
				lambda.Application(lambda.Variable(2), lambda.Variable(0)))))
	fact := lambda.Application(lambda.Fix, lambda.Abstraction(lambda.Abstraction(body)))

	v, err := m.Eval(lambda.Application(fact, lambda.Integer(6)), env)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("factorial 6 → %s", v), nil
}

func demoBlackHole(m *need.Machine) (string, error) {
	// let rec x = x — forcing x demands x while it is being forced.
	th := m.SuspendRec(lambda.Variable(0), nil)
	_, err := m.Force(th)
	if err == nil {
		return "", fmt.Errorf("self-referential binding was not detected")
	}
	return fmt.Sprintf("detected: %v", err), nil
}

// churchToInt applies a Church numeral to a native increment and zero.
func churchToInt(m *need.Machine, numeral lambda.Term) (int64, error) {
	inc := need.Native{Name: "inc", Fn: func(m *need.Machine, arg *need.Thunk) (need.Value, error) {
		v, err := m.Force(arg)
		if err != nil {
			return nil, err
		}
		i, ok := v.(need.Int)
		if !ok {
			return nil, fmt.Errorf("inc: want an integer, got %s", v)
		}
		return need.Int{N: i.N + 1}, nil
	}}
	env := (*need.Env)(nil).Extend(m.FromValue(inc))

	term := lambda.Application(lambda.Application(numeral, lambda.Variable(0)), lambda.Integer(0))
	v, err := m.Eval(term, env)
	if err != nil {
		return 0, err
	}
	i, ok := v.(need.Int)
	if !ok {
		return 0, fmt.Errorf("numeral did not reduce to an integer: %s", v)
	}
	return i.N, nil
}

func nativeIf0() need.Value {
	return need.Native{Name: "if0", Fn: func(m *need.Machine, n *need.Thunk) (need.Value, error) {
		return need.Native{Name: "if0/1", Fn: func(m *need.Machine, yes *need.Thunk) (need.Value, error) {
			return need.Native{Name: "if0/2", Fn: func(m *need.Machine, no *need.Thunk) (need.Value, error) {
				v, err := m.Force(n)
				if err != nil {
					return nil, err
				}
				i, ok := v.(need.Int)
				if !ok {
					return nil, fmt.Errorf("if0: want an integer, got %s", v)
				}
				// Only the selected branch is ever forced.
				if i.N == 0 {
					return m.Force(yes)
				}
				return m.Force(no)
			}}, nil
		}}, nil
	}}
}

func nativeMul() need.Value {
	return need.Native{Name: "mul", Fn: func(m *need.Machine, a *need.Thunk) (need.Value, error) {
		return need.Native{Name: "mul/1", Fn: func(m *need.Machine, b *need.Thunk) (need.Value, error) {
			av, err := m.Force(a)
			if err != nil {
				return nil, err
			}
			bv, err := m.Force(b)
			if err != nil {
				return nil, err
			}
			x, okA := av.(need.Int)
			y, okB := bv.(need.Int)
			if !okA || !okB {
				return nil, fmt.Errorf("mul: want integers, got %s and %s", av, bv)
			}
			return need.Int{N: x.N * y.N}, nil
		}}, nil
	}}
}

func nativeSub1() need.Value {
	return need.Native{Name: "sub1", Fn: func(m *need.Machine, a *need.Thunk) (need.Value, error) {
		v, err := m.Force(a)
		if err != nil {
			return nil, err
		}
		i, ok := v.(need.Int)
		if !ok {
			return nil, fmt.Errorf("sub1: want an integer, got %s", v)
		}
		return need.Int{N: i.N - 1}, nil
	}}
}
