package walk_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/TFMV/walkdir/walk"
)

func ExampleWalker() {
	root, err := os.MkdirTemp("", "walk-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(root)

	// One child per directory keeps the listing order deterministic.
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0755); err != nil {
		panic(err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "file.txt"), nil, 0644); err != nil {
		panic(err)
	}

	w := walk.New(root, walk.NewOptions())
	defer w.Close()
	for w.Next() {
		if err := w.Err(); err != nil {
			fmt.Println("error:", err)
			continue
		}
		rel, _ := filepath.Rel(root, w.Entry().Path())
		fmt.Println(w.Entry().Depth(), filepath.ToSlash(rel))
	}
	// Output:
	// 0 .
	// 1 sub
	// 2 sub/file.txt
}

func ExampleCollect() {
	root, err := os.MkdirTemp("", "walk-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(root)

	if err := os.MkdirAll(filepath.Join(root, ".git", "objects"), 0755); err != nil {
		panic(err)
	}

	opts := walk.NewOptions()
	opts.Filter = walk.SkipHidden()
	entries, err := walk.Collect(root, opts)
	fmt.Println(len(entries), err)
	// Output:
	// 1 <nil>
}

func ExampleOptions() {
	root, err := os.MkdirTemp("", "walk-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(root)

	if err := os.WriteFile(filepath.Join(root, "file.txt"), nil, 0644); err != nil {
		panic(err)
	}

	// The zero value has MaxDepth 0 and stops at the root.
	zero, _ := walk.Collect(root, walk.Options{})
	full, _ := walk.Collect(root, walk.NewOptions())
	fmt.Println(len(zero), len(full))
	// Output:
	// 1 2
}
