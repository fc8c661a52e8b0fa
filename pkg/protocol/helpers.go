package protocol

// NewImageDataMessage creates a per-frame steering message.
func NewImageDataMessage(ballPosition, cornerPosition int) (*Message, error) {
	return NewMessage(TypeImageData, ImageData{
		BallPosition:   ballPosition,
		CornerPosition: cornerPosition,
	})
}

// NewThresholdAdjustmentMessage creates a threshold adjustment request.
func NewThresholdAdjustmentMessage(lowerAdjustment, redAdjustment int) (*Message, error) {
	return NewMessage(TypeThresholdAdjustment, ThresholdAdjustment{
		LowerAdjustment: lowerAdjustment,
		RedAdjustment:   redAdjustment,
	})
}

// NewStateMessage creates a node state snapshot message.
func NewStateMessage(state StateData) (*Message, error) {
	return NewMessage(TypeState, state)
}

// GetImageData extracts steering signals from a message.
func (m *Message) GetImageData() (*ImageData, error) {
	var data ImageData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetThresholdAdjustment extracts an adjustment request from a message.
func (m *Message) GetThresholdAdjustment() (*ThresholdAdjustment, error) {
	var data ThresholdAdjustment
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetStateData extracts a state snapshot from a message.
func (m *Message) GetStateData() (*StateData, error) {
	var data StateData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
