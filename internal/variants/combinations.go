package variants

// Option is one axis of variation with its ordered values.
type Option struct {
	Name   string
	Values []string
}

// Coordinate is the value chosen on one axis.
type Coordinate struct {
	Option string
	Value  string
}

// Combination is one point of the cartesian product, in option order.
type Combination []Coordinate

// Map returns the option-name to value mapping stored on a variant.
func (c Combination) Map() map[string]string {
	m := make(map[string]string, len(c))
	for _, co := range c {
		m[co.Option] = co.Value
	}
	return m
}

// Values returns the chosen values in option order.
func (c Combination) Values() []string {
	out := make([]string, len(c))
	for i, co := range c {
		out[i] = co.Value
	}
	return out
}

// Key identifies the combination independently of option order.
func (c Combination) Key() string {
	return key(c.Map())
}

// Combinations returns the cartesian product of the options' values in
// odometer order: the last option cycles fastest. No options, or any option
// without values, yields no combinations.
func Combinations(opts []Option) []Combination {
	if len(opts) == 0 {
		return nil
	}
	total := 1
	for _, o := range opts {
		if len(o.Values) == 0 {
			return nil
		}
		total *= len(o.Values)
	}

	out := make([]Combination, 0, total)
	idx := make([]int, len(opts))
	for {
		combo := make(Combination, len(opts))
		for i, o := range opts {
			combo[i] = Coordinate{Option: o.Name, Value: o.Values[idx[i]]}
		}
		out = append(out, combo)

		pos := len(opts) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(opts[pos].Values) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return out
		}
	}
}
