// Package memo provides a generic, append-only memoization table.
//
// A [Table] maps keys to values using structural (deep) equality rather than
// identity: two distinct slices with equal contents address the same entry.
// Keys are first reduced to a 64-bit hash so lookups do not scan every stored
// entry. Entries whose keys share a hash are kept together in a bucket and
// compared with deep equality, so a hash collision can never return a value
// computed for a different key.
//
// # Hashing
//
// The default [Hasher], [HashValue], walks the key by reflection and hashes
// its contents with xxh3. Map entries are combined independently of
// iteration order, so equal maps hash alike. String keys skip the walk and
// are hashed directly. Types with a cheaper canonical form should supply
// their own hasher with [WithHasher].
//
// # Lifetime
//
// Nothing is ever removed from a table. Memory grows with the number of
// distinct keys observed; callers bound that growth by bounding the lifetime
// of the table itself (for example, one table per compilation session).
//
// # Concurrency
//
// A Table serializes access with a mutex, so it may be shared by goroutines.
// The compute function passed to [Table.Get] runs with the lock released;
// when two goroutines race on the first insertion of a key, the first value
// stored wins and both callers observe it.
package memo
