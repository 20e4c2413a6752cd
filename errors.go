package carve

import "github.com/pkg/errors"

// PowerOfTwoError is the error returned from CheckPow2 or other methods if the number being tested is not a
// non-zero power of two
var PowerOfTwoError error = errors.New("number must be a non-zero power of two")
