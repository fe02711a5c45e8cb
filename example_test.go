package pagehighlight_test

import (
	"fmt"

	"github.com/kailas-cloud/pagehighlight"
)

func ExampleHighlight() {
	data := []byte(`{"analyzeResult":{"pages":[{"pageNumber":1,"width":612,"height":792,"words":[
		{"content":"The","polygon":[0,0,10,0,10,10,0,10]},
		{"content":"red","polygon":[10,0,20,0,20,10,10,10]},
		{"content":"fox","polygon":[20,0,30,0,30,10,20,10]}]}]}}`)

	out := pagehighlight.Highlight("red fox", data)
	for _, m := range out.Matches() {
		fmt.Println(out.Kind(), m.PageNumber(), m.Rect().Array())
	}
	// Output: matches 1 [10 0 20 10]
}
