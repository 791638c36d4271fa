package tensix

import "github.com/xyproto/env/v2"

// defaultSysMemSize is the host-visible system memory size.
const defaultSysMemSize = 1024 * 1024 * 1024

// sysMemSize is the configured system memory size, overridable with
// TENSIX_SYSMEM_SIZE (bytes).
var sysMemSize = uint32(env.Int("TENSIX_SYSMEM_SIZE", defaultSysMemSize))

// cqDiag enables per-command trace logging in the pipeline when
// TENSIX_CQ_DIAG is set.
var cqDiag = env.Bool("TENSIX_CQ_DIAG")
