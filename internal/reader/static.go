package reader

// Static is an ArchitectureReader over records already in memory. The
// file backends decode into it, and tests construct it literally.
type Static struct {
	Nodes                 []NodeRecord
	Publishers            []PublisherRecord
	Subscriptions         []SubscriptionRecord
	Timers                []TimerRecord
	TimerCallbacks        []CallbackRecord
	SubscriptionCallbacks []CallbackRecord
	CallbackGroups        []CallbackGroupRecord
	VariablePassings      []VariablePassingRecord
	MessageContexts       []MessageContextRecord
	TfBroadcasters        []TfBroadcasterRecord
	TfBuffers             []TfBufferRecord
	Executors             []ExecutorRecord
	Paths                 []PathRecord
	TfFrames              []TransformFrameRecord
}

var _ ArchitectureReader = (*Static)(nil)

func (s *Static) GetNodes() []NodeRecord { return s.Nodes }

func (s *Static) GetPublishers(nodeName string) []PublisherRecord {
	var out []PublisherRecord
	for _, r := range s.Publishers {
		if r.NodeName == nodeName {
			out = append(out, r)
		}
	}
	return out
}

func (s *Static) GetSubscriptions(nodeName string) []SubscriptionRecord {
	var out []SubscriptionRecord
	for _, r := range s.Subscriptions {
		if r.NodeName == nodeName {
			out = append(out, r)
		}
	}
	return out
}

func (s *Static) GetTimers(nodeName string) []TimerRecord {
	var out []TimerRecord
	for _, r := range s.Timers {
		if r.NodeName == nodeName {
			out = append(out, r)
		}
	}
	return out
}

func (s *Static) GetTimerCallbacks(nodeName string) []CallbackRecord {
	var out []CallbackRecord
	for _, r := range s.TimerCallbacks {
		if r.NodeName == nodeName {
			out = append(out, r)
		}
	}
	return out
}

func (s *Static) GetSubscriptionCallbacks(nodeName string) []CallbackRecord {
	var out []CallbackRecord
	for _, r := range s.SubscriptionCallbacks {
		if r.NodeName == nodeName {
			out = append(out, r)
		}
	}
	return out
}

func (s *Static) GetCallbackGroups(nodeName string) []CallbackGroupRecord {
	var out []CallbackGroupRecord
	for _, r := range s.CallbackGroups {
		if r.NodeName == nodeName {
			out = append(out, r)
		}
	}
	return out
}

func (s *Static) GetVariablePassings(nodeName string) []VariablePassingRecord {
	var out []VariablePassingRecord
	for _, r := range s.VariablePassings {
		if r.NodeName == nodeName {
			out = append(out, r)
		}
	}
	return out
}

func (s *Static) GetMessageContexts(nodeName string) []MessageContextRecord {
	var out []MessageContextRecord
	for _, r := range s.MessageContexts {
		if r.NodeName == nodeName {
			out = append(out, r)
		}
	}
	return out
}

func (s *Static) GetTfBroadcaster(nodeName string) *TfBroadcasterRecord {
	for i := range s.TfBroadcasters {
		if s.TfBroadcasters[i].NodeName == nodeName {
			return &s.TfBroadcasters[i]
		}
	}
	return nil
}

func (s *Static) GetTfBuffer(nodeName string) *TfBufferRecord {
	for i := range s.TfBuffers {
		if s.TfBuffers[i].NodeName == nodeName {
			return &s.TfBuffers[i]
		}
	}
	return nil
}

func (s *Static) GetExecutors() []ExecutorRecord { return s.Executors }

func (s *Static) GetPaths() []PathRecord { return s.Paths }

func (s *Static) GetTfFrames() []TransformFrameRecord { return s.TfFrames }
