// Walking
//
// A walk is pulled one outcome at a time. Each outcome is either an Entry
// or a *WalkError, and errors never end the walk:
//
//	w := walk.New("/path/to/dir", walk.NewOptions())
//	for w.Next() {
//		if err := w.Err(); err != nil {
//			log.Println(err)
//			continue
//		}
//		fmt.Println(w.Entry().Path())
//	}
//
//	// Range-over-func form; breaking out releases every open listing
//	for e, err := range walk.New(root, opts).All() {
//		...
//	}
//
//	// Callback form
//	err := walk.Walk(root, opts, func(e walk.Entry, err error) error {
//		if e.Name() == "stop" {
//			return walk.SkipAll
//		}
//		return nil
//	})
//
// Build Options with NewOptions. A zero Options{} has MaxDepth 0, which is
// a legal bound that yields the root alone:
//
//	walk.Collect(root, walk.Options{})    // only root
//	walk.Collect(root, walk.NewOptions()) // the whole tree
//
// Filters prune whole subtrees:
//
//	opts := walk.NewOptions()
//	opts.MaxDepth = 3
//	opts.Filter = walk.And(walk.SkipHidden(), walk.ExcludeNames("vendor", "*.tmp"))
//
// With FollowLinks set, a symbolic link that resolves to one of its own open
// ancestors is reported as a loop (errors.Is(err, walk.ErrLoopDetected))
// and not entered. Links into sibling subtrees are walked normally. Setting
// NoLoopDetection skips that check, leaving MaxDepth as the only bound on a
// cycle.

// Watch Functionality
//
// Watch monitors a directory for filesystem changes. Recursive watches
// find their directories with a Walker:
//
//	opts := walk.WatchOptions{
//		Recursive: true,
//		Events:    []walk.WatchEvent{walk.EventCreate, walk.EventModify},
//	}
//	err := walk.Watch(context.Background(), "/path/to/watch", opts, func(ctx context.Context, result walk.WatchResult) error {
//		if result.Error != nil {
//			return result.Error
//		}
//		fmt.Printf("Event: %s, File: %s\n", result.Message.Event, result.Message.Path)
//		return nil
//	})

package walk
