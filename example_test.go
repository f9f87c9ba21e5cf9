package bigint_test

import (
	"errors"
	"fmt"

	"github.com/agbru/bigint"
)

// ExampleBigInteger_DivRem shows truncated division next to the Euclidean
// modulus.
func ExampleBigInteger_DivRem() {
	x, y := bigint.NewInt64(-7), bigint.NewInt64(2)
	q, r, _ := x.DivRem(y)
	m, _ := x.Mod(y)
	fmt.Println(q, r, m)
	// Output: -3 -1 1
}

func ExampleParse() {
	x, err := bigint.Parse("-123456789012345678901234567890")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(x.Square())
	fmt.Println(x.DigitCount(), x.BitLength())

	_, err = bigint.Parse("12e3")
	fmt.Println(err)
	fmt.Println(errors.Is(err, bigint.ErrInvalidArgument))
	// Output:
	// 15241578753238836750495351562536198787501905199875019052100
	// 30 97
	// bigint.Parse: parsing "12e3": invalid argument
	// true
}

func ExampleBigInteger_Bytes() {
	fmt.Printf("% x\n", bigint.NewInt64(-129).Bytes(false))
	fmt.Printf("% x\n", bigint.One.ShiftLeft(64).Bytes(false))
	fmt.Println(bigint.FromBytes([]byte{0x80}, false))
	// Output:
	// ff 7f
	// 01 00 00 00 00 00 00 00 00
	// -128
}

func ExampleBigInteger_Pow() {
	fmt.Println(bigint.NewInt64(2).Pow(100))
	r, _ := bigint.NewInt64(4).ModPow(bigint.NewInt64(13), bigint.NewInt64(497))
	fmt.Println(r)
	// Output:
	// 1267650600228229401496703205376
	// 445
}

func ExampleBigInteger_Sqrt() {
	s, r, _ := bigint.NewInt64(999999).SqrtRem()
	fmt.Println(s, r)
	_, err := bigint.NewInt64(-1).Sqrt()
	fmt.Println(err)
	// Output:
	// 999 1998
	// sqrt: invalid argument
}
