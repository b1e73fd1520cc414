// SPDX-License-Identifier: MIT
package gaussian

// SeedPosition exposes seedPosition to the external tests.
var SeedPosition = seedPosition
