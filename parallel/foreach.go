// Package parallel contains the bounded parallel ForEach() plus other concurrency primitives.
package parallel

import "sync"

// ForEach executes a for loop with a limited number of concurrent goroutines.
// Each goroutine processes one integer, from 0 to length.
// With limit 1 the body runs on the calling goroutine, in order.
func ForEach(length, limit int, body func(i int)) {
	if limit <= 0 {
		limit = 1
	}
	if length <= 0 {
		return
	}
	if limit == 1 || length == 1 {
		for i := 0; i < length; i++ {
			body(i)
		}
		return
	}

	sem := make(chan struct{}, limit) // Semaphore with buffer size 'limit'
	var wg sync.WaitGroup
	wg.Add(length)

	for i := 0; i < length; i++ {
		sem <- struct{}{} // Acquire semaphore
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			body(i)
		}(i)
	}

	wg.Wait()
}
