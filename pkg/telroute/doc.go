// Package telroute is a routing and propagation engine for chat-bot
// updates. Applications compose a tree of named routers, register filtered
// handlers and middleware on per-kind observers, compile the tree into an
// immutable service, and feed updates through it.
//
// # Basic usage
//
//	router := telroute.NewRouter("main")
//	router.Message().Register(
//		telroute.Handle(func(ctx context.Context, req telroute.Request) error {
//			// reply to the message
//			return nil
//		}),
//		filters.NewCommand("start"),
//	)
//
//	admin := telroute.NewRouter("admin")
//	admin.Message().Register(adminHandler, adminOnly)
//	if err := router.Include(admin); err != nil {
//		log.Fatal(err)
//	}
//
//	svc, err := router.Compile(telroute.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	dp := telroute.NewDispatcher(bot, svc)
//	if err := dp.Run(ctx, source); err != nil {
//		log.Fatal(err)
//	}
//
// # Propagation model
//
// Each update runs through the pre-dispatch observer first, then the
// observer matching its kind, then the children in inclusion order until
// one resolves it. Outer middleware runs before filters and may replace the
// request or reject the update; inner middleware wraps handler execution.
// Handlers steer propagation with EventReturn verdicts: Finish resolves the
// update, Skip falls through to the next entry, Cancel stops propagation.
//
// Routers are mutable builders; Compile freezes the tree into a
// RouterService with no registration API. A compiled service is safe for
// concurrent use.
package telroute
