package match

// Origin is the moving "zero" the matcher subtracts from raw gesture state
// to measure incremental displacement within a single gesture. Its rest
// value — used initially and after every gesture end — is {0, 0, 1, 0}.
type Origin struct {
	X, Y     float64
	Scale    float64
	Rotation float64
}

func restOrigin() Origin {
	return Origin{Scale: 1}
}
