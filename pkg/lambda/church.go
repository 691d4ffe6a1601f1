package lambda

// Church encodings and standard combinators, expressed through the
// construction API. Used by the driver and the evaluator tests.

// Identity is the I combinator: λx. x.
var Identity = Abstraction(Variable(0))

// True is the Church boolean true (the K combinator): λx. λy. x.
var True = Abstraction(Abstraction(Variable(1)))

// False is the Church boolean false: λx. λy. y.
var False = Abstraction(Abstraction(Variable(0)))

// Not is λb. b false true.
var Not = Abstraction(Application(Application(Variable(0), False), True))

// And is λp. λq. p q p.
var And = Abstraction(Abstraction(
	Application(Application(Variable(1), Variable(0)), Variable(1))))

// Succ is λn. λf. λx. f (n f x).
var Succ = Abstraction(Abstraction(Abstraction(
	Application(Variable(1),
		Application(Application(Variable(2), Variable(1)), Variable(0))))))

// Plus is λm. λn. λf. λx. m f (n f x).
var Plus = Abstraction(Abstraction(Abstraction(Abstraction(
	Application(
		Application(Variable(3), Variable(1)),
		Application(Application(Variable(2), Variable(1)), Variable(0)))))))

// Times is λm. λn. λf. m (n f).
var Times = Abstraction(Abstraction(Abstraction(
	Application(Variable(2), Application(Variable(1), Variable(0))))))

// Pair is λx. λy. λf. f x y.
var Pair = Abstraction(Abstraction(Abstraction(
	Application(Application(Variable(0), Variable(2)), Variable(1)))))

// Fst is λp. p true.
var Fst = Abstraction(Application(Variable(0), True))

// Snd is λp. p false.
var Snd = Abstraction(Application(Variable(0), False))

// selfApply is λx. x x.
var selfApply = Abstraction(Application(Variable(0), Variable(0)))

// Omega is the diverging term (λx. x x) (λx. x x). Forcing it never
// terminates.
var Omega = Application(selfApply, selfApply)

// Fix is the Y combinator: λf. (λx. f (x x)) (λx. f (x x)).
var Fix = Abstraction(Application(fixHalf, fixHalf))

var fixHalf = Abstraction(Application(Variable(1),
	Application(Variable(0), Variable(0))))

// Church returns the Church numeral for n: λf. λx. f (f ... (f x)).
func Church(n int) Term {
	body := Variable(0)
	for i := 0; i < n; i++ {
		body = Application(Variable(1), body)
	}
	return Abstraction(Abstraction(body))
}
