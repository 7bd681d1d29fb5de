/*
Package ports defines the driven ports (interfaces) for the phone book controller.

These interfaces decouple the state machine from external implementations, allowing
the controller to persist its entries to various storage backends.

# Key Interfaces

  - KVStore: A string-keyed get/set store, the equivalent of browser local storage.
*/
package ports
