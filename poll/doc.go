// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package poll implements the poll state engine on top of the shared store.

# Repository

Repository is the sole writer of poll keys. Operations:

  - Create: validate, generate IDs, persist metadata + zeroed counters +
    active-index entry + TTLs as one pipelined batch
  - Get: read metadata and counters, recompute the total, evaluate expiry at
    read time
  - ListActive: active-index scan re-validated through Get
  - Vote: the vote transaction protocol (below)
  - Close: unconditional flag flip, gated only by existence
  - Delete: remove all four records, idempotent
  - SweepExpired: index scan + Delete for everything past its deadline

# Vote Transaction Protocol

A vote is validate → voter-set membership test → one MULTI/EXEC batch
(HINCRBY counter, SADD fingerprint). The batch is the only mutating step, so
concurrent votes from different fingerprints both count. Concurrent votes
from the same fingerprint can race between the membership test and the
batch; the resulting over-count of at most one per racing fingerprint is an
accepted trade-off for lock-free voting. Sequential calls are strictly
exclusive.

# Notifications

After every successful vote the fresh snapshot is published on the poll's
updates channel; close and delete publish the poll ID on its closed channel.
Publish failures are logged and swallowed; they never fail the mutation.

# Sweeper

Sweeper runs SweepExpired once at startup and then on a fixed interval.
Together with read-time expiry checks and key TTLs this is defense in depth:
any one mechanism alone keeps expired polls from accepting votes.
*/
package poll
