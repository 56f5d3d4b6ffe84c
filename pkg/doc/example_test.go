package doc_test

import (
	"fmt"

	"github.com/trig29/Flowchart-Json-Editor/pkg/doc"
)

func ExampleNew() {
	// A fresh document contains exactly one node: the root.
	d := doc.New()

	root, _ := d.RootNode()
	fmt.Println("Nodes:", len(d.Nodes))
	fmt.Println("Root text:", root.Text)
	// Output:
	// Nodes: 1
	// Root text: dialogue-start
}

func ExampleAddEdge() {
	// Build root → question → answer and let normalization derive the rest.
	d := doc.New()
	d = doc.AddNode(d, doc.NewNode("question", doc.Point{X: 400, Y: 400}, doc.Size{}))
	d = doc.AddNode(d, doc.NewNode("answer", doc.Point{X: 400, Y: 600}, doc.Size{}))

	d, _ = doc.AddEdge(d, doc.NewEdge("e1", doc.RootNodeID, doc.OutputPointID, "question", doc.InputPointID))
	d, _ = doc.AddEdge(d, doc.NewEdge("e2", "question", doc.OutputPointID, "answer", doc.InputPointID))
	d = doc.Normalize(d)

	fmt.Println("Nodes:", len(d.Nodes))
	fmt.Println("Edges:", len(d.Edges))
	fmt.Println("Root out-degree:", d.OutDegree(doc.RootNodeID))
	// Output:
	// Nodes: 3
	// Edges: 2
	// Root out-degree: 1
}

func ExampleNormalize_choiceFlag() {
	// ChoiceFlag nodes carry a derived child count instead of text.
	d := doc.New()

	choice := doc.NewNode("choice", doc.Point{}, doc.Size{})
	choice.Variant = doc.ChoiceFlag
	d = doc.AddNode(d, choice)
	d = doc.AddNode(d, doc.NewNode("yes", doc.Point{}, doc.Size{}))
	d = doc.AddNode(d, doc.NewNode("no", doc.Point{}, doc.Size{}))

	d, _ = doc.AddEdge(d, doc.NewEdge("", "choice", doc.OutputPointID, "yes", doc.InputPointID))
	d, _ = doc.AddEdge(d, doc.NewEdge("", "choice", doc.OutputPointID, "no", doc.InputPointID))
	d = doc.Normalize(d)

	n, _ := d.Node("choice")
	fmt.Println("Children:", *n.ChildCount)
	// Output:
	// Children: 2
}
