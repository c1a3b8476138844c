// Package loader registers HTTP features on the Fiber application.
//
// A feature bundles a service and its routes behind the Feature interface.
// The start command builds each feature from the shared database, storage
// client and configuration, registers it with a Manager, then calls LoadAll
// once the global middleware is installed.
//
//	mgr := loader.NewManager()
//	mgr.Register(compare.NewFeature(db, store, region, cfg.Compare, history, log))
//	if err := mgr.LoadAll(app); err != nil {
//	    log.Fatal("Failed to load features", zap.Error(err))
//	}
//
// Features load in registration order. Disabled features are skipped and a
// name registered twice fails the whole load.
package loader
