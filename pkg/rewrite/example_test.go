package rewrite_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/absrewrite/pkg/rewrite"
)

func ExampleTransform() {
	modes := rewrite.Modes{Eq: rewrite.EqSplit, Le: rewrite.LeRange}

	fmt.Println(rewrite.Transform("abs(x) == 4", modes))
	fmt.Println(rewrite.Transform("abs(a) <= (A+B)", modes))

	// Output:
	// x == -4 or x == 4
	// -(A+B) <= a and a <= (A+B)
}

func ExampleSquaredValue() {
	fmt.Println(rewrite.SquaredValue("3"))
	fmt.Println(rewrite.SquaredValue("3.5"))
	fmt.Println(rewrite.SquaredValue("x+1"))

	// Output:
	// 9
	// 12.25
	// (x+1)^2
}

func ExampleRewriter_Rewrite() {
	rw := rewrite.NewRewriter()

	result, err := rw.Rewrite(context.Background(), strings.NewReader("w = abs(foo) == 3.5"), rewrite.Modes{
		Eq: rewrite.EqSquare,
		Le: rewrite.LeAbs,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount())
	fmt.Printf("Was Modified: %v\n", result.WasModified)

	// Output:
	// Modified: w = foo^2 == 12.25
	// Changes: 1
	// Was Modified: true
}
