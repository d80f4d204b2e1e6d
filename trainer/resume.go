package trainer

// Resume continues training at epoch, the iterator replays the shuffles of that epoch
// when it was built with a fixed seed
func (l *Loop[F, Y]) Resume(epoch int) {
	if epoch < 0 {
		epoch = 0
	}
	l.it.SetEpoch(epoch)
	l.next = epoch
}
