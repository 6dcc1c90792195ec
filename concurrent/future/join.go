/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package future

type join struct {
	inputs []Future

	// values[i] is set once inputs[i] completed; inputs[i] is then set to nil.
	values    []interface{}
	remaining int
}

func (j *join) Poll(waker Waker) (PollResult, error) {
	for i, input := range j.inputs {
		if input == nil {
			continue
		}

		value, err := input.Poll(waker)
		if err != nil {
			return nil, err
		}
		if IsPending(value) {
			continue
		}
		j.values[i] = value
		j.inputs[i] = nil
		j.remaining--
	}

	if j.remaining > 0 {
		return PollResultPending, nil
	}
	return j.values, nil
}

// Join polls all futures together and completes with an []interface{} of their values in the given
// order. It fails as soon as one of them fails.
func Join(futures ...Future) Future {
	inputs := make([]Future, len(futures))
	copy(inputs, futures)
	return &join{
		inputs:    inputs,
		values:    make([]interface{}, len(futures)),
		remaining: len(futures),
	}
}
