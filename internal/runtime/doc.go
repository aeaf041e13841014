// Package runtime provides the execution context for ghup commands.
//
// It encapsulates shared dependencies and configuration needed by actions,
// such as the resolved configuration, the logger and the contents API client.
package runtime
