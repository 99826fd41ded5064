package node_test

import (
	"os"

	"xml-migrator/node"
)

func ExampleDump() {
	doc, err := node.ParseString(`<XmlClass a="1" b="text1"><d><str>abc1</str></d><C a="2" b="text2"/></XmlClass>`)
	if err != nil {
		panic(err)
	}

	_ = node.Dump(os.Stdout, doc.Root())

	// Output:
	// ˯Element
	//  ˯Attribute
	//    Value a = 1
	//  ˯Attribute
	//    Value b = "text1"
	//   ˯Element
	//     ˯Element
	//       Value str = "abc1"
	//   Element
	//    ˯Attribute
	//      Value a = 2
	//    ˯Attribute
	//      Value b = "text2"
}
