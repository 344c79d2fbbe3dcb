package numfmt

// maxRetries is how many times a conversion may re-enter its layout step.
const maxRetries = 1

// retry counts re-entries of a layout loop and fails once the cap is passed.
type retry struct {
	n int
}

func (r *retry) next() error {
	r.n++
	if r.n > maxRetries {
		return ErrRoundingRetry
	}
	return nil
}
