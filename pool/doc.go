// Package pool implements a generic object pool: a bounded set of expensive,
// reusable objects handed out to callers under Claim/Release, with allocation,
// re-validation and deallocation run off the claim path by a background
// scheduler shared across pool instances.
package pool
