/*
Package domain contains the core domain models of the phone book controller.

It defines the entries held by the state machine, the states and events that
drive it, and the transition rules between them. This package is kept pure and
free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Entry: A single contact record (id, first name, last name, phone number).
  - State: The name of the machine's current state (idle, ready, running).
  - Event: A typed message dispatched into the machine, optionally carrying an Entry.
  - Transition: A row of the dispatch table (state × event → action, next state).
  - Snapshot: The collaborator-facing read of the machine (state + entries).
*/
package domain
