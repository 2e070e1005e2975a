// Copyright 2026 The preq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for setting HTTP send timeouts on
// plans which do not specify their own. A generic interface for
// timeout policies is provided, Policy, along with a policy generating
// function and built-in policies.
package timeout
