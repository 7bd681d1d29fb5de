/*
Package observability turns the controller's lifecycle hooks into logs and metrics.

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	hooks := observability.Combine(
		metrics.Hooks(),
		observability.LoggingHooks(logger),
	)
	book := phonebook.New(store, phonebook.WithLifecycleHooks(hooks))
*/
package observability
